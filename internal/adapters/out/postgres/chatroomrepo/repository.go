package chatroomrepo

import (
	"context"
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormChatRoomManager implements ports.ChatRoomManager using GORM.
type GormChatRoomManager struct {
	db *gorm.DB
}

// NewGormChatRoomManager creates a new GORM chat room manager.
func NewGormChatRoomManager(db *gorm.DB) *GormChatRoomManager {
	return &GormChatRoomManager{db: db}
}

// CreateForBooking opens a chat room for the booking. When the booking
// already has an open room, that room is returned untouched, so a retried
// acceptance does not spawn a second room.
func (m *GormChatRoomManager) CreateForBooking(ctx context.Context, bookingID kernel.UUID) (kernel.UUID, error) {
	if err := bookingID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var existing ChatRoomDTO
	err := m.db.WithContext(ctx).
		Where("booking_id = ? AND open", bookingID.Bytes()).
		First(&existing).Error
	if err == nil {
		return kernel.UUIDFromBytes(existing.ID[:])
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return kernel.UUID{}, err
	}

	roomID := kernel.NewUUID()
	dto := ChatRoomDTO{
		ID:        roomID.Bytes(),
		BookingID: bookingID.Bytes(),
		Open:      true,
		CreatedAt: time.Now().UTC(),
	}
	if err = m.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}

	return roomID, nil
}

// CloseForBooking closes the booking's open room and records the reason.
// When no room is open the call is a no-op, which lets rejection and
// completion both close unconditionally.
func (m *GormChatRoomManager) CloseForBooking(ctx context.Context, bookingID kernel.UUID, reason string) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}

	closedAt := time.Now().UTC()
	return m.db.WithContext(ctx).
		Model(&ChatRoomDTO{}).
		Where("booking_id = ? AND open", bookingID.Bytes()).
		Updates(map[string]any{
			"open":          false,
			"closed_reason": reason,
			"closed_at":     closedAt,
		}).Error
}
