package create_order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	customerRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/customer"
	"github.com/labiga/LaBiga-OrderService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeOrderRepo struct {
	created *domain.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.ID = "order-1"
	order.CreatedAt = time.Date(2026, time.January, 2, 20, 0, 0, 0, time.UTC)
	f.created = order
	return order, nil
}

type recordedOrder struct {
	customerID string
	amount     int64
}

type fakeCustomerRepo struct {
	existing *domain.CustomerProfile
	created  *domain.CustomerProfile
	recorded []recordedOrder
}

func (f *fakeCustomerRepo) FindByIdentity(ctx context.Context, name string, phone *string) (*domain.CustomerProfile, error) {
	if f.existing == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.existing, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *domain.CustomerProfile) (*domain.CustomerProfile, error) {
	c.ID = "customer-1"
	f.created = c
	return c, nil
}

func (f *fakeCustomerRepo) RecordOrder(ctx context.Context, id string, amount int64, orderedAt time.Time, address, phone, email *string) error {
	f.recorded = append(f.recorded, recordedOrder{customerID: id, amount: amount})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(orders *fakeOrderRepo, customers *fakeCustomerRepo) *UseCase {
	return NewUseCase(orders, customers, fakeTxManager{}, nopLogger{})
}

func TestExecute_RecomputesTotalOnServer(t *testing.T) {
	orders := &fakeOrderRepo{}
	customers := &fakeCustomerRepo{}
	uc := newTestUseCase(orders, customers)

	// Клиентской суммы в запросе нет вовсе: считаем по меню
	resp, err := uc.Execute(context.Background(), &Request{
		CustomerName: "Valentina Rojas",
		Items: []ItemSelection{
			{ID: "margarita", Quantity: 2}, // 2 x 8990
			{ID: "diavola", Quantity: 1},   // 1 x 10990
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2*8990+10990), resp.TotalAmount)
	assert.Equal(t, 3, resp.UnitCount)
	assert.Equal(t, "order-1", resp.ID)

	// Позиции несут серверные цены и названия
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Margherita Verace", resp.Items[0].Name)
	assert.Equal(t, int64(8990), resp.Items[0].Price)
}

func TestExecute_RejectsUnknownMenuItem(t *testing.T) {
	uc := newTestUseCase(&fakeOrderRepo{}, &fakeCustomerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		CustomerName: "Valentina Rojas",
		Items:        []ItemSelection{{ID: "hawaiana", Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrUnknownMenuItem)
}

func TestExecute_ValidatesInput(t *testing.T) {
	uc := newTestUseCase(&fakeOrderRepo{}, &fakeCustomerRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "empty customer name",
			req:  &Request{CustomerName: "  ", Items: []ItemSelection{{ID: "margarita", Quantity: 1}}},
		},
		{
			name: "no items",
			req:  &Request{CustomerName: "Valentina", Items: nil},
		},
		{
			name: "quantity above limit",
			req:  &Request{CustomerName: "Valentina", Items: []ItemSelection{{ID: "margarita", Quantity: domain.MaxItemQuantity + 1}}},
		},
		{
			name: "zero quantity",
			req:  &Request{CustomerName: "Valentina", Items: []ItemSelection{{ID: "margarita", Quantity: 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CreatesCustomerProfileWhenMissing(t *testing.T) {
	orders := &fakeOrderRepo{}
	customers := &fakeCustomerRepo{}
	uc := newTestUseCase(orders, customers)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerName:  "Valentina Rojas",
		Items:         []ItemSelection{{ID: "bomba", Quantity: 1}},
		CustomerPhone: ptr.Ptr("+56911112222"),
	})

	require.NoError(t, err)
	require.NotNil(t, customers.created)
	assert.Equal(t, "Valentina Rojas", customers.created.Name)
	assert.Equal(t, "customer-1", resp.CustomerID)

	// Заказ привязан к профилю, агрегаты записаны
	require.NotNil(t, orders.created.CustomerID)
	assert.Equal(t, "customer-1", *orders.created.CustomerID)
	require.Len(t, customers.recorded, 1)
	assert.Equal(t, int64(9990), customers.recorded[0].amount)
}

func TestExecute_ReusesExistingCustomerProfile(t *testing.T) {
	orders := &fakeOrderRepo{}
	customers := &fakeCustomerRepo{
		existing: &domain.CustomerProfile{ID: "customer-7", Name: "Valentina Rojas"},
	}
	uc := newTestUseCase(orders, customers)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerName: "valentina rojas", // другой регистр - тот же клиент
		Items:        []ItemSelection{{ID: "prosciutto", Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Nil(t, customers.created)
	assert.Equal(t, "customer-7", resp.CustomerID)
	require.Len(t, customers.recorded, 1)
	assert.Equal(t, "customer-7", customers.recorded[0].customerID)
}

func TestExecute_NeverRejectsOnCapacity(t *testing.T) {
	orders := &fakeOrderRepo{}
	customers := &fakeCustomerRepo{}
	uc := newTestUseCase(orders, customers)

	// Заказ на больше пицц, чем обычный дневной лимит: принимается
	resp, err := uc.Execute(context.Background(), &Request{
		CustomerName: "Valentina Rojas",
		Items: []ItemSelection{
			{ID: "margarita", Quantity: domain.MaxItemQuantity},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MaxItemQuantity, resp.UnitCount)
}
