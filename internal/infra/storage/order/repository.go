package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/pkg/dbmetrics"
	"github.com/labiga/LaBiga-OrderService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с заказами
type Repository struct {
	db            DBExecutor
	notifyChannel string
}

// NewRepository создает новый экземпляр репозитория заказов
// notifyChannel - канал pg_notify, в который анонсируются новые заказы
func NewRepository(db DBExecutor, notifyChannel string) *Repository {
	return &Repository{db: db, notifyChannel: notifyChannel}
}

// insertNotification payload уведомления о новом заказе
// Формат должен совпадать с тем, что разбирает infra/notify
type insertNotification struct {
	OrderID string `json:"order_id"`
	Units   int    `json:"units"`
}

// Create создает новый заказ и анонсирует его в notify-канал.
// pg_notify выполняется тем же executor'ом: внутри транзакции уведомление
// уйдет слушателям только после коммита, то есть подписчики никогда не
// увидят заказ, которого нет в таблице.
func (r *Repository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal items: %v", ErrEncodeItems, err)
	}

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"customer_name",
			"customer_id",
			"total_amount",
			"items",
			"address",
			"delivery_method",
			"delivery_time",
			"payment_method",
			"notes",
			"customer_phone",
			"customer_email",
		).
		Values(
			o.CustomerName,
			o.CustomerID,
			o.TotalAmount,
			itemsJSON,
			o.Address,
			o.DeliveryMethod,
			o.DeliveryTime,
			o.PaymentMethod,
			o.Notes,
			o.CustomerPhone,
			o.CustomerEmail,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	o.CreatedAt = createdAt.Time

	if err := r.notifyInsert(ctx, executor, o); err != nil {
		return nil, err
	}

	return o, nil
}

// notifyInsert отправляет pg_notify о созданном заказе
func (r *Repository) notifyInsert(ctx context.Context, executor DBExecutor, o *domain.Order) error {
	payload, err := json.Marshal(insertNotification{
		OrderID: o.ID,
		Units:   o.UnitCount(),
	})
	if err != nil {
		return fmt.Errorf("%w: notifyInsert - marshal payload: %v", ErrEncodeItems, err)
	}

	if _, err := executor.ExecContext(ctx, "SELECT pg_notify($1, $2)", r.notifyChannel, string(payload)); err != nil {
		return fmt.Errorf("%w: notifyInsert - pg_notify: %v", ErrExecQuery, err)
	}

	return nil
}

var orderColumns = []string{
	"id",
	"customer_name",
	"customer_id",
	"total_amount",
	"items",
	"address",
	"delivery_method",
	"delivery_time",
	"payment_method",
	"notes",
	"customer_phone",
	"customer_email",
	"created_at",
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	o, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return o, nil
}

// List получает список заказов с фильтрацией по периоду и имени клиента
// Сортировка: сначала новые
func (r *Repository) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if filter.Since != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.Since})
	}
	if filter.Until != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.Until})
	}
	if filter.CustomerName != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"customer_name": "%" + *filter.CustomerName + "%"})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

// SumUnitsSince суммирует количество пицц по всем заказам, созданным
// начиная с указанного момента. Используется Stock Ledger'ом для
// первоначального baseline: дальше счетчик растет по notify-событиям,
// без повторных суммирований.
func (r *Repository) SumUnitsSince(ctx context.Context, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM((item->>'quantity')::int), 0)").
		From("orders, jsonb_array_elements(items) AS item").
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumUnitsSince - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumUnitsSince - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// Update обновляет редактируемые поля заказа (CRM)
func (r *Repository) Update(ctx context.Context, id string, customerName string, items []domain.OrderItem, totalAmount int64, notes *string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal items: %v", ErrEncodeItems, err)
	}

	query, args, err := psqlbuilder.Update("orders").
		Set("customer_name", customerName).
		Set("items", itemsJSON).
		Set("total_amount", totalAmount).
		Set("notes", notes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет заказ (физическое удаление, действие CRM "eliminar pedido")
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrder сканирует одну строку заказа
func scanOrder(scan func(dest ...interface{}) error) (*domain.Order, error) {
	var o domain.Order
	var itemsJSON []byte
	var createdAt sql.NullTime

	err := scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerID,
		&o.TotalAmount,
		&itemsJSON,
		&o.Address,
		&o.DeliveryMethod,
		&o.DeliveryTime,
		&o.PaymentMethod,
		&o.Notes,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeItems, err)
		}
	}
	o.CreatedAt = createdAt.Time

	return &o, nil
}
