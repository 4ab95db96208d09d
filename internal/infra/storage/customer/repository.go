package customer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/pkg/dbmetrics"
	"github.com/labiga/LaBiga-OrderService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с профилями клиентов (CRM)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var customerColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"address",
	"notes",
	"total_spent",
	"total_orders",
	"favorite_pizza",
	"first_order_date",
	"last_order_date",
	"created_at",
}

// Create создает новый профиль клиента
func (r *Repository) Create(ctx context.Context, c *domain.CustomerProfile) (*domain.CustomerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"name",
			"phone",
			"email",
			"address",
			"notes",
			"total_spent",
			"total_orders",
			"favorite_pizza",
			"first_order_date",
			"last_order_date",
		).
		Values(
			c.Name,
			c.Phone,
			c.Email,
			c.Address,
			c.Notes,
			c.TotalSpent,
			c.TotalOrders,
			c.FavoritePizza,
			c.FirstOrderDate,
			c.LastOrderDate,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time

	return c, nil
}

// GetByID получает профиль клиента по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.CustomerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return c, nil
}

// FindByIdentity ищет профиль по правилу дедупликации CRM:
// сначала по телефону (если он пригоден как идентификатор),
// затем по нормализованному имени
func (r *Repository) FindByIdentity(ctx context.Context, name string, phone *string) (*domain.CustomerProfile, error) {
	key := domain.CustomerIdentityKey(name, phone)

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(customerColumns...).From("customers")
	if phone != nil && key == strings.TrimSpace(*phone) {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"phone": key})
	} else {
		selectBuilder = selectBuilder.Where("LOWER(TRIM(name)) = ?", key)
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentity - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentity - scan customer: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetAll получает все профили клиентов, отсортированные по потраченной сумме
func (r *Repository) GetAll(ctx context.Context) ([]*domain.CustomerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		OrderBy("total_spent DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.CustomerProfile, 0)
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// RecordOrder обновляет агрегаты профиля после нового заказа:
// total_spent, total_orders, last_order_date и последние контактные данные
func (r *Repository) RecordOrder(ctx context.Context, id string, amount int64, orderedAt time.Time, address, phone, email *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("customers").
		Set("total_spent", squirrel.Expr("total_spent + ?", amount)).
		Set("total_orders", squirrel.Expr("total_orders + 1")).
		Set("last_order_date", orderedAt).
		Where(squirrel.Eq{"id": id})

	// Контакты и адрес обновляем только когда в заказе они заполнены
	if address != nil {
		updateBuilder = updateBuilder.Set("address", *address)
	}
	if phone != nil {
		updateBuilder = updateBuilder.Set("phone", *phone)
	}
	if email != nil {
		updateBuilder = updateBuilder.Set("email", *email)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordOrder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordOrder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordOrder - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Update обновляет редактируемые поля профиля (CRM-форма клиента)
func (r *Repository) Update(ctx context.Context, id string, name string, phone, email, address, notes *string) (*domain.CustomerProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("name", name).
		Set("phone", phone).
		Set("email", email).
		Set("address", address).
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
		return nil, ErrCustomerNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет профиль клиента
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customers").
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
		return ErrCustomerNotFound
	}

	return nil
}

// scanCustomer сканирует одну строку профиля клиента
func scanCustomer(scan func(dest ...interface{}) error) (*domain.CustomerProfile, error) {
	var c domain.CustomerProfile
	var createdAt sql.NullTime
	var firstOrder, lastOrder sql.NullTime

	err := scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.Notes,
		&c.TotalSpent,
		&c.TotalOrders,
		&c.FavoritePizza,
		&firstOrder,
		&lastOrder,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	if firstOrder.Valid {
		c.FirstOrderDate = &firstOrder.Time
	}
	if lastOrder.Valid {
		c.LastOrderDate = &lastOrder.Time
	}

	return &c, nil
}
