// Package twilio bridges customer and worker phones through Twilio Proxy.
// Neither side sees the other's real number; the session lives for the span
// of an accepted assignment and is torn down on rejection or completion.
package twilio

import (
	"time"

	"github.com/google/uuid"
)

// CallMaskingSessionDTO represents the database structure of a masked call
// session. The row ties a booking to its Twilio Proxy session so enable and
// disable stay idempotent across retries.
type CallMaskingSessionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"type:uuid;index"`
	SessionSid string
	Active     bool `gorm:"index"`
	CreatedAt  time.Time
	ClosedAt   *time.Time
}

// TableName specifies the database table name for masked call sessions.
func (CallMaskingSessionDTO) TableName() string {
	return "call_masking_sessions"
}
