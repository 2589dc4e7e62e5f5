package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add saves a new assignment to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateInStatus saves an existing assignment only when its stored status
// still equals expected. The WHERE clause on status is what serializes two
// concurrent transitions: the loser matches zero rows and gets
// errs.ErrVersionIsInvalid.
func (r *GormAssignmentRepository) UpdateInStatus(
	ctx context.Context,
	aggregate *assignment.Assignment,
	expected assignment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("status")
	}

	return nil
}

// AddCompletionReport persists the completion report for an assignment.
func (r *GormAssignmentRepository) AddCompletionReport(ctx context.Context, report *assignment.CompletionReport) error {
	if err := report.Validate(); err != nil {
		return err
	}

	dto := reportFromDomain(report, time.Now().UTC())
	return r.db.WithContext(ctx).Create(&dto).Error
}
