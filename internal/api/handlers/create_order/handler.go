package create_order

import (
	"errors"
	"net/http"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	createOrder "github.com/labiga/LaBiga-OrderService/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgUnknownMenuItem    = "la pizza seleccionada no está en el menú"
	msgInvalidInput       = "datos del pedido inválidos"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrUnknownMenuItem):
			h.logger.Warn("POST /orders - Unknown menu item: customer=%s", req.CustomerName)
			handlers.RespondBadRequest(w, msgUnknownMenuItem)

		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: customer=%s, error=%v", req.CustomerName, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /orders - Failed to create order: customer=%s, error=%v", req.CustomerName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%s, total=%d", result.ID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
