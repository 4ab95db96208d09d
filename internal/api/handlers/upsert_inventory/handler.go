package upsert_inventory

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	inventoryService "github.com/labiga/LaBiga-OrderService/internal/service/inventory"
	"github.com/labiga/LaBiga-OrderService/internal/service/inventory/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidInput       = "límite de masas inválido"
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

// Handle PUT /api/v1/admin/inventory/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req models.UpsertInventoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/inventory/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), date, &req)
	if err != nil {
		if errors.Is(err, inventoryService.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/inventory/{date} - Invalid input: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("PUT /admin/inventory/{date} - Failed to upsert inventory: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/inventory/{date} - Inventory set successfully: date=%s, doughs=%d", date, result.TotalDoughs)
	handlers.RespondJSON(w, http.StatusOK, result)
}
