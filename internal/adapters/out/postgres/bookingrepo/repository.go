package bookingrepo

import (
	"context"
	"errors"

	"fieldwork/internal/core/domain/model/booking"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBookingRepository implements ports.BookingRepository using GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM booking repository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Get retrieves a booking by ID.
func (r *GormBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists the lifecycle fields of an existing booking. The column
// list is deliberately explicit: everything else on the row belongs to the
// booking and payment flows and must survive this write untouched.
func (r *GormBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BookingDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":                  aggregate.Status().String(),
			"actual_start_time":       aggregate.ActualStartTime(),
			"actual_end_time":         aggregate.ActualEndTime(),
			"actual_duration_minutes": aggregate.ActualDurationMinutes(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("booking", aggregate.ID().String())
	}

	return nil
}
