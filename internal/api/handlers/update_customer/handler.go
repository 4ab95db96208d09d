package update_customer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	customersService "github.com/labiga/LaBiga-OrderService/internal/service/customers"
	"github.com/labiga/LaBiga-OrderService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgCustomerNotFound   = "cliente no encontrado"
	msgInvalidInput       = "datos del cliente inválidos"
)

type Handler struct {
	service CustomersService
	logger  Logger
}

func NewHandler(service CustomersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/customers/{customerId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, customersService.ErrCustomerNotFound):
			h.logger.Warn("PUT /admin/customers/{customerId} - Customer not found: customer_id=%s", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, customersService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/customers/{customerId} - Invalid input: customer_id=%s, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/customers/{customerId} - Failed to update customer: customer_id=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/customers/{customerId} - Customer updated successfully: customer_id=%s", customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
