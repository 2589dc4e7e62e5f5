// Package bookingrepo provides data transfer objects and mapping functions
// for booking persistence. The assignment flow does not own bookings: it
// rehydrates them and writes back only the lifecycle fields it is authorized
// to change.
package bookingrepo

import (
	"time"

	"fieldwork/internal/core/domain/model/booking"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BookingDTO represents the database structure of customer bookings. The
// table is shared with the external booking and payment flows; columns
// outside the lifecycle set are read-only here.
type BookingDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID `gorm:"type:uuid;index"`
	ServiceID             uuid.UUID `gorm:"type:uuid;index"`
	Status                string    `gorm:"type:varchar(20);index"`
	ScheduledStartTime    time.Time
	ScheduledEndTime      time.Time
	ActualStartTime       *time.Time
	ActualEndTime         *time.Time
	ActualDurationMinutes *int
	QuoteAmount           *float64
	PaymentStatus         string `gorm:"type:varchar(20)"`
	ContactPerson         string `gorm:"type:varchar(255)"`
	ContactPhone          string `gorm:"type:varchar(32)"`
	Address               string `gorm:"type:text"`
	Description           string `gorm:"type:text"`
}

// TableName specifies the database table name for booking entities.
func (BookingDTO) TableName() string {
	return "bookings"
}

// toDomain converts a database DTO to a booking domain aggregate using
// RestoreBooking.
func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	status, err := booking.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(
		id, userID, serviceID,
		status,
		dto.ScheduledStartTime, dto.ScheduledEndTime,
		dto.ActualStartTime, dto.ActualEndTime, dto.ActualDurationMinutes,
		dto.QuoteAmount, dto.PaymentStatus,
		dto.ContactPerson, dto.ContactPhone,
		dto.Address, dto.Description,
	)
}
