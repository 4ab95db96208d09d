package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	customerRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/customer"
	"github.com/labiga/LaBiga-OrderService/internal/service/customers/models"
)

// Service сервис CRM: профили клиентов с агрегатами по истории заказов
type Service struct {
	customerRepo CustomerRepository
	orderRepo    OrderRepository
	logger       Logger
}

// NewService создает новый экземпляр CRM сервиса
func NewService(customerRepo CustomerRepository, orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// GetAll получает все профили клиентов, обогащенные агрегатами по заказам:
// любимая пицца, дата первого и последнего заказа. Счетчики total_spent и
// total_orders хранятся в профиле и обновляются при каждом заказе, поэтому
// переживают удаление старых заказов из истории
func (s *Service) GetAll(ctx context.Context) (*models.CustomerListResponse, error) {
	s.logger.Info("GetAll: fetching customer profiles")

	profiles, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	orders, err := s.orderRepo.List(ctx, domain.OrdersFilter{})
	if err != nil {
		s.logger.Error("GetAll: failed to load orders for aggregation: %v", err)
		return nil, fmt.Errorf("%w: GetAll - failed to load orders: %v", ErrInternal, err)
	}

	s.enrich(profiles, orders)

	s.logger.Info("GetAll: successfully fetched %d profiles", len(profiles))
	return models.FromDomainCustomerList(profiles), nil
}

// Update редактирует профиль клиента
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Update: updating customer id=%s", id)

	if err := s.validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for customer id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.customerRepo.Update(ctx, id, strings.TrimSpace(req.Name), req.Phone, req.Email, req.Address, req.Notes)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Update: customer id=%s not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated customer id=%s", id)
	return models.FromDomainCustomer(updated), nil
}

// Delete удаляет профиль клиента. История заказов остается:
// заказы хранят снимок имени и контактов на момент оформления
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting customer id=%s", id)

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Delete: customer id=%s not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Delete: repository error for customer id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted customer id=%s", id)
	return nil
}

// enrich наполняет агрегаты профилей по истории заказов.
// Любимая пицца - позиция с наибольшим суммарным количеством по всем
// заказам клиента; при равенстве выигрывает более дорогая
func (s *Service) enrich(profiles []*domain.CustomerProfile, orders []*domain.Order) {
	type aggregate struct {
		quantities map[string]int
		profile    *domain.CustomerProfile
	}

	byID := make(map[string]*aggregate, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = &aggregate{
			quantities: make(map[string]int),
			profile:    p,
		}
	}

	for _, o := range orders {
		if o.CustomerID == nil {
			continue
		}
		agg, ok := byID[*o.CustomerID]
		if !ok {
			continue
		}

		for _, item := range o.Items {
			agg.quantities[item.Name] += item.Quantity
		}

		createdAt := o.CreatedAt
		if agg.profile.FirstOrderDate == nil || createdAt.Before(*agg.profile.FirstOrderDate) {
			agg.profile.FirstOrderDate = &createdAt
		}
		if agg.profile.LastOrderDate == nil || createdAt.After(*agg.profile.LastOrderDate) {
			agg.profile.LastOrderDate = &createdAt
		}
	}

	for _, agg := range byID {
		if favorite := favoritePizza(agg.quantities); favorite != "" {
			agg.profile.FavoritePizza = &favorite
		}
	}
}

func favoritePizza(quantities map[string]int) string {
	best := ""
	bestQty := 0
	bestPrice := int64(-1)

	for name, qty := range quantities {
		price := menuPriceByName(name)
		if qty > bestQty || (qty == bestQty && price > bestPrice) {
			best = name
			bestQty = qty
			bestPrice = price
		}
	}

	return best
}

func menuPriceByName(name string) int64 {
	for _, item := range domain.Menu() {
		if item.Name == name {
			return item.Price
		}
	}
	return 0
}

func (s *Service) validateUpdate(req *models.UpdateCustomerRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < domain.MinCustomerNameLen || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be between %d and %d characters",
			ErrInvalidInput, domain.MinCustomerNameLen, domain.MaxNameLength)
	}
	if req.Address != nil && len(*req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address cannot exceed %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
