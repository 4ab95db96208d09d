package create_order

import (
	"fmt"
	"strings"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.CustomerName)
	if len(name) < domain.MinCustomerNameLen {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name cannot exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}
	if len(req.Items) > domain.MaxItemsPerOrder {
		return fmt.Errorf("%w: order cannot contain more than %d items", ErrInvalidInput, domain.MaxItemsPerOrder)
	}

	if req.Address != nil && len(*req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address cannot exceed %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
