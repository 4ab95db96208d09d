package create_order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	customerRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/customer"
)

// UseCase use case для создания заказа.
//
// Заказ никогда не отклоняется из-за исчерпанного дневного лимита:
// лимит - витринный сигнал для бейджа доступности, а не резервирование.
// Решение принять или отклонить заказ при нулевом остатке остается
// за пиццерией в момент подтверждения по WhatsApp
type UseCase struct {
	orderRepo    OrderRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заказа.
// Заказ и обновление CRM профиля идут в одной сериализуемой транзакции:
// уведомление о заказе уйдет слушателям только после коммита обоих
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: customer=%s, items=%d", req.CustomerName, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим позиции через меню и пересчитываем сумму на сервере
	selections := make([]domain.OrderItemSelection, len(req.Items))
	for i, sel := range req.Items {
		selections[i] = domain.OrderItemSelection{ID: sel.ID, Quantity: sel.Quantity}
	}

	items, total, err := domain.ResolveOrderItems(selections)
	if err != nil {
		uc.logger.Warn("CreateOrder: menu resolution failed: %v", err)
		if errors.Is(err, domain.ErrUnknownMenuItem) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownMenuItem, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	now := uc.timeProvider.Now()

	var createdOrder *domain.Order
	var customerID string

	// 3. Заказ + CRM профиль в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Ищем профиль клиента по телефону или нормализованному имени
		profile, err := uc.customerRepo.FindByIdentity(txCtx, name, req.CustomerPhone)
		if err != nil {
			if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Error("CreateOrder: failed to find customer: %v", err)
				return fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
			}

			// 3.2. Профиля нет - создаем новый
			profile, err = uc.customerRepo.Create(txCtx, &domain.CustomerProfile{
				Name:    name,
				Phone:   req.CustomerPhone,
				Email:   req.CustomerEmail,
				Address: req.Address,
			})
			if err != nil {
				uc.logger.Error("CreateOrder: failed to create customer profile: %v", err)
				return fmt.Errorf("%w: failed to create customer profile: %v", ErrInternal, err)
			}
			uc.logger.Info("CreateOrder: created customer profile id=%s", profile.ID)
		}
		customerID = profile.ID

		// 3.3. Обновляем агрегаты профиля (total_spent, total_orders, контакты)
		if err := uc.customerRepo.RecordOrder(txCtx, profile.ID, total, now,
			req.Address, req.CustomerPhone, req.CustomerEmail); err != nil {
			uc.logger.Error("CreateOrder: failed to record order for customer id=%s: %v", profile.ID, err)
			return fmt.Errorf("%w: failed to record order: %v", ErrInternal, err)
		}

		// 3.4. Создаем заказ; репозиторий анонсирует его в notify-канал
		createdOrder, err = uc.orderRepo.Create(txCtx, &domain.Order{
			CustomerName:   name,
			CustomerID:     &profile.ID,
			TotalAmount:    total,
			Items:          items,
			Address:        req.Address,
			DeliveryMethod: req.DeliveryMethod,
			DeliveryTime:   req.DeliveryTime,
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
			CustomerPhone:  req.CustomerPhone,
			CustomerEmail:  req.CustomerEmail,
		})
		if err != nil {
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOrder: successfully created order id=%s, total=%d, units=%d",
		createdOrder.ID, total, createdOrder.UnitCount())

	return &Response{
		ID:           createdOrder.ID,
		CustomerName: createdOrder.CustomerName,
		CustomerID:   customerID,
		TotalAmount:  createdOrder.TotalAmount,
		UnitCount:    createdOrder.UnitCount(),
		Items:        createdOrder.Items,
		CreatedAt:    createdOrder.CreatedAt,
	}, nil
}
