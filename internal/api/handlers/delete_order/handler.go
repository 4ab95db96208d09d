package delete_order

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

// Handle DELETE /api/v1/admin/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	if err := h.service.Delete(r.Context(), orderID); err != nil {
		if errors.Is(err, ordersService.ErrOrderNotFound) {
			h.logger.Warn("DELETE /admin/orders/{orderId} - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)
			return
		}
		h.logger.Error("DELETE /admin/orders/{orderId} - Failed to delete order: order_id=%s, error=%v", orderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/orders/{orderId} - Order deleted successfully: order_id=%s", orderID)
	handlers.RespondNoContent(w)
}
