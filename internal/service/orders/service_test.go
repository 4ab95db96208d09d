package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	orderRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/order"
	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeOrderRepo struct {
	orders      map[string]*domain.Order
	lastUpdated *domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	byID := make(map[string]*domain.Order)
	for _, o := range orders {
		byID[o.ID] = o
	}
	return &fakeOrderRepo{orders: byID}
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, id string, customerName string, items []domain.OrderItem, totalAmount int64, notes *string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	o.CustomerName = customerName
	o.Items = items
	o.TotalAmount = totalAmount
	o.Notes = notes
	f.lastUpdated = o
	return o, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return orderRepo.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) SumUnitsSince(ctx context.Context, since time.Time) (int, error) {
	return 0, nil
}

func TestUpdate_RecomputesTotalFromMenu(t *testing.T) {
	repo := newFakeOrderRepo(&domain.Order{ID: "o1", CustomerName: "Valentina"})
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), "o1", &models.UpdateOrderRequest{
		CustomerName: "Valentina Rojas",
		Items: []models.OrderItemEdit{
			{ID: "margarita", Quantity: 1},
			{ID: "prosciutto", Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8990+2*11990), resp.TotalAmount)
	assert.Equal(t, 3, resp.UnitCount)
	assert.Equal(t, "Prosciutto e Rucola", resp.Items[1].Name)
}

func TestUpdate_RejectsUnknownMenuItem(t *testing.T) {
	repo := newFakeOrderRepo(&domain.Order{ID: "o1"})
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), "o1", &models.UpdateOrderRequest{
		CustomerName: "Valentina Rojas",
		Items:        []models.OrderItemEdit{{ID: "cuatro-quesos", Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrUnknownMenuItem)
	assert.Nil(t, repo.lastUpdated)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), nopLogger{})

	_, err := svc.Update(context.Background(), "missing", &models.UpdateOrderRequest{
		CustomerName: "Valentina Rojas",
		Items:        []models.OrderItemEdit{{ID: "margarita", Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestList_RejectsInvertedPeriod(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), nopLogger{})

	since := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListOrdersRequest{Since: &since, Until: &until})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newFakeOrderRepo(&domain.Order{ID: "o1"})
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), "o1"))
	require.ErrorIs(t, svc.Delete(context.Background(), "o1"), ErrOrderNotFound)
}
