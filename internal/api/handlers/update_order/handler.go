package update_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	ordersService "github.com/labiga/LaBiga-OrderService/internal/service/orders"
	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgOrderNotFound      = "pedido no encontrado"
	msgUnknownMenuItem    = "la pizza seleccionada no está en el menú"
	msgInvalidInput       = "datos del pedido inválidos"
)

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

// Handle PATCH /api/v1/admin/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	var req models.UpdateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{orderId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ordersService.ErrOrderNotFound):
			h.logger.Warn("PATCH /admin/orders/{orderId} - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, ordersService.ErrUnknownMenuItem):
			h.logger.Warn("PATCH /admin/orders/{orderId} - Unknown menu item: order_id=%s", orderID)
			handlers.RespondBadRequest(w, msgUnknownMenuItem)

		case errors.Is(err, ordersService.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/orders/{orderId} - Invalid input: order_id=%s, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /admin/orders/{orderId} - Failed to update order: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/orders/{orderId} - Order updated successfully: order_id=%s", orderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
