package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	inventoryRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/inventory"
	"github.com/labiga/LaBiga-OrderService/internal/service/inventory/models"
)

// maxDailyDoughs верхняя граница лимита, защита от опечаток в админке
const maxDailyDoughs = 500

// Service сервис управления дневными лимитами масс
type Service struct {
	inventoryRepo InventoryRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса лимитов
func NewService(inventoryRepo InventoryRepository, logger Logger) *Service {
	return &Service{
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// GetByDate получает лимит масс на указанную дату
func (s *Service) GetByDate(ctx context.Context, date string) (*models.InventoryResponse, error) {
	s.logger.Info("GetByDate: fetching inventory for date=%s", date)

	if err := validateDate(date); err != nil {
		s.logger.Warn("GetByDate: invalid date=%s", date)
		return nil, err
	}

	inv, err := s.inventoryRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrInventoryNotFound) {
			s.logger.Warn("GetByDate: inventory for date=%s not found", date)
			return nil, ErrInventoryNotFound
		}
		s.logger.Error("GetByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInventory(inv), nil
}

// Upsert устанавливает лимит масс на дату. Лимит 0 - валидное значение:
// день с нулевым лимитом сразу уходит в sold-out
func (s *Service) Upsert(ctx context.Context, date string, req *models.UpsertInventoryRequest) (*models.InventoryResponse, error) {
	s.logger.Info("Upsert: setting inventory for date=%s to %d doughs", date, req.TotalDoughs)

	if err := validateDate(date); err != nil {
		s.logger.Warn("Upsert: invalid date=%s", date)
		return nil, err
	}
	if req.TotalDoughs < 0 || req.TotalDoughs > maxDailyDoughs {
		s.logger.Warn("Upsert: invalid totalDoughs=%d for date=%s", req.TotalDoughs, date)
		return nil, fmt.Errorf("%w: totalDoughs must be between 0 and %d", ErrInvalidInput, maxDailyDoughs)
	}

	inv, err := s.inventoryRepo.Upsert(ctx, date, req.TotalDoughs)
	if err != nil {
		s.logger.Error("Upsert: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully set inventory for date=%s to %d doughs", date, inv.TotalDoughs)
	return models.FromDomainInventory(inv), nil
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	return nil
}
