package workerrepo

import (
	"context"
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/domain/model/worker"
	"fieldwork/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// GetByUserID retrieves the worker profile for a platform user account.
func (r *GormWorkerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*worker.Worker, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementCompletedJob adds one completed job and the earnings to the
// worker's running totals in a single UPDATE. Concurrent completions for the
// same worker serialize on the row without a read-modify-write cycle.
func (r *GormWorkerRepository) IncrementCompletedJob(ctx context.Context, workerID kernel.UUID, earnings float64) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", workerID.Bytes()).
		Updates(map[string]any{
			"completed_job_count": gorm.Expr("completed_job_count + 1"),
			"cumulative_earnings": gorm.Expr("cumulative_earnings + ?", earnings),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", workerID.String())
	}

	return nil
}
