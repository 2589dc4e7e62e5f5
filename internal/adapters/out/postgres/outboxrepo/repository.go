package outboxrepo

import (
	"context"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEarningsOutboxRepository implements ports.EarningsOutboxRepository
// using GORM.
type GormEarningsOutboxRepository struct {
	db *gorm.DB
}

// NewGormEarningsOutboxRepository creates a new GORM earnings outbox
// repository.
func NewGormEarningsOutboxRepository(db *gorm.DB) *GormEarningsOutboxRepository {
	return &GormEarningsOutboxRepository{db: db}
}

// Add persists a new pending credit.
func (r *GormEarningsOutboxRepository) Add(ctx context.Context, credit ports.EarningsCredit) error {
	if err := credit.ID.Validate(); err != nil {
		return err
	}

	dto := fromPort(credit)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnapplied retrieves up to limit credits created before olderThan that
// have not been applied yet, oldest first.
func (r *GormEarningsOutboxRepository) GetUnapplied(
	ctx context.Context,
	olderThan time.Time,
	limit int,
) ([]ports.EarningsCredit, error) {
	var dtos []EarningsCreditDTO
	err := r.db.WithContext(ctx).
		Where("applied_at IS NULL AND created_at < ?", olderThan).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	credits := make([]ports.EarningsCredit, 0, len(dtos))
	for _, dto := range dtos {
		credit, portErr := toPort(dto)
		if portErr != nil {
			return nil, portErr
		}
		credits = append(credits, credit)
	}

	return credits, nil
}

// MarkApplied stamps the credit as applied. The applied_at IS NULL condition
// makes the stamp conditional: the second of two racing applies matches zero
// rows and gets errs.ObjectNotFoundError, so a credit is never counted twice.
func (r *GormEarningsOutboxRepository) MarkApplied(ctx context.Context, id kernel.UUID, appliedAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&EarningsCreditDTO{}).
		Where("id = ? AND applied_at IS NULL", id.Bytes()).
		Update("applied_at", appliedAt)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("earningsCredit", id.String())
	}

	return nil
}
