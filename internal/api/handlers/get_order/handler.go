package get_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	ordersService "github.com/labiga/LaBiga-OrderService/internal/service/orders"
)

const msgOrderNotFound = "pedido no encontrado"

type Handler struct {
	service OrdersService
	logger  Logger
}

func NewHandler(service OrdersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	result, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, ordersService.ErrOrderNotFound) {
			h.logger.Warn("GET /admin/orders/{orderId} - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)
			return
		}
		h.logger.Error("GET /admin/orders/{orderId} - Failed to get order: order_id=%s, error=%v", orderID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
