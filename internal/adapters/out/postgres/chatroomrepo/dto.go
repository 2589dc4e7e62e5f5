// Package chatroomrepo stores the customer-worker chat rooms that open when
// an assignment is accepted. A booking has at most one open room at a time;
// closed rooms stay around with the reason they were closed.
package chatroomrepo

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoomDTO represents the database structure of a chat room.
type ChatRoomDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID    uuid.UUID `gorm:"type:uuid;index"`
	Open         bool      `gorm:"index"`
	ClosedReason string
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

// TableName specifies the database table name for chat rooms.
func (ChatRoomDTO) TableName() string {
	return "chat_rooms"
}
