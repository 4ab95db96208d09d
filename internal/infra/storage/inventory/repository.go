package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/pkg/dbmetrics"
	"github.com/labiga/LaBiga-OrderService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с дневными лимитами масс
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лимитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает лимит на указанный календарный день (YYYY-MM-DD)
func (r *Repository) GetByDate(ctx context.Context, date string) (*domain.DailyInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"date",
		"total_doughs",
		"created_at",
		"updated_at",
	).
		From("daily_inventory").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.DailyInventory
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.Date,
		&inv.TotalDoughs,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan inventory: %v", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}

// Upsert создает или обновляет лимит на указанный день
// (admin-форма "Gestiona las masas diarias": одна строка на дату)
func (r *Repository) Upsert(ctx context.Context, date string, totalDoughs int) (*domain.DailyInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_inventory").
		Columns("date", "total_doughs").
		Values(date, totalDoughs).
		Suffix(`ON CONFLICT (date) DO UPDATE
			SET total_doughs = EXCLUDED.total_doughs, updated_at = NOW()
			RETURNING id, date, total_doughs, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var inv domain.DailyInventory
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.Date,
		&inv.TotalDoughs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}
