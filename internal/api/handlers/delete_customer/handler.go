package delete_customer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
	customersService "github.com/labiga/LaBiga-OrderService/internal/service/customers"
)

const msgCustomerNotFound = "cliente no encontrado"

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

// Handle DELETE /api/v1/admin/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		if errors.Is(err, customersService.ErrCustomerNotFound) {
			h.logger.Warn("DELETE /admin/customers/{customerId} - Customer not found: customer_id=%s", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)
			return
		}
		h.logger.Error("DELETE /admin/customers/{customerId} - Failed to delete customer: customer_id=%s, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/customers/{customerId} - Customer deleted successfully: customer_id=%s", customerID)
	handlers.RespondNoContent(w)
}
