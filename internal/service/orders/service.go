package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	orderRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/order"
	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

// Service сервис для работы с заказами (админская часть)
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// GetByID получает заказ по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%s", id)

	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrder(o), nil
}

// List получает список заказов с фильтрацией по периоду и имени клиента
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	logMsg := "List: fetching orders"
	if req.Since != nil && req.Until != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.Since.Format(domain.DateFormat), req.Until.Format(domain.DateFormat))
	}
	if req.CustomerName != nil {
		logMsg += fmt.Sprintf(", customer=%s", *req.CustomerName)
	}
	s.logger.Info(logMsg)

	if req.Since != nil && req.Until != nil && req.Until.Before(*req.Since) {
		s.logger.Warn("List: until is before since")
		return nil, fmt.Errorf("%w: until is before since", ErrInvalidInput)
	}

	orders, err := s.orderRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d orders", len(orders))
	return models.FromDomainOrderList(orders), nil
}

// Update редактирует заказ: имя клиента, состав и заметки.
// Цены и названия позиций всегда берутся из меню, сумма пересчитывается
// на сервере - клиентскому тоталу доверять нельзя
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	s.logger.Info("Update: updating order id=%s", id)

	// 1. Валидируем входные данные
	if err := s.validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for order id=%s: %v", id, err)
		return nil, err
	}

	// 2. Резолвим позиции через меню и пересчитываем сумму
	selections := make([]domain.OrderItemSelection, len(req.Items))
	for i, edit := range req.Items {
		selections[i] = domain.OrderItemSelection{ID: edit.ID, Quantity: edit.Quantity}
	}

	items, total, err := domain.ResolveOrderItems(selections)
	if err != nil {
		s.logger.Warn("Update: menu resolution failed for order id=%s: %v", id, err)
		if errors.Is(err, domain.ErrUnknownMenuItem) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownMenuItem, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	updated, err := s.orderRepo.Update(ctx, id, strings.TrimSpace(req.CustomerName), items, total, req.Notes)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Update: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Update: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated order id=%s, total=%d", id, total)
	return models.FromDomainOrder(updated), nil
}

// Delete удаляет заказ
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting order id=%s", id)

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Delete: order id=%s not found", id)
			return ErrOrderNotFound
		}
		s.logger.Error("Delete: repository error for order id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted order id=%s", id)
	return nil
}

func (s *Service) validateUpdate(req *models.UpdateOrderRequest) error {
	name := strings.TrimSpace(req.CustomerName)
	if len(name) < domain.MinCustomerNameLen || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name must be between %d and %d characters",
			ErrInvalidInput, domain.MinCustomerNameLen, domain.MaxNameLength)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}
	if len(req.Items) > domain.MaxItemsPerOrder {
		return fmt.Errorf("%w: order cannot contain more than %d items", ErrInvalidInput, domain.MaxItemsPerOrder)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
