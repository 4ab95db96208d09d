package get_inventory

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	inventoryService "github.com/labiga/LaBiga-OrderService/internal/service/inventory"
)

const (
	msgInventoryNotFound = "no hay límite configurado para esta fecha"
	msgInvalidDate       = "formato de fecha inválido, se espera YYYY-MM-DD"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/inventory/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, inventoryService.ErrInventoryNotFound):
			h.logger.Warn("GET /admin/inventory/{date} - Inventory not found: date=%s", date)
			handlers.RespondNotFound(w, msgInventoryNotFound)

		case errors.Is(err, inventoryService.ErrInvalidInput):
			h.logger.Warn("GET /admin/inventory/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/inventory/{date} - Failed to get inventory: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
