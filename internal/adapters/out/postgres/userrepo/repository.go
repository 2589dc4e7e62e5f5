// Package userrepo reads platform user accounts. Users are owned by the
// identity part of the platform; the assignment flow only resolves contact
// details for notifications and call masking.
package userrepo

import (
	"context"
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the database structure of platform user accounts.
type UserDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string    `gorm:"type:varchar(255)"`
	Email                 string    `gorm:"type:varchar(255)"`
	Phone                 string    `gorm:"type:varchar(32)"`
	HasActiveSubscription bool
	CreatedAt             time.Time
}

// TableName specifies the database table name for user accounts.
func (UserDTO) TableName() string {
	return "users"
}

// Contact is the slice of a user account the outbound gateways need.
type Contact struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}

// GormUserReader resolves user contact details.
type GormUserReader struct {
	db *gorm.DB
}

// NewGormUserReader creates a new GORM user reader.
func NewGormUserReader(db *gorm.DB) *GormUserReader {
	return &GormUserReader{db: db}
}

// GetContact retrieves the contact details of a user account.
func (r *GormUserReader) GetContact(ctx context.Context, id kernel.UUID) (Contact, error) {
	if err := id.Validate(); err != nil {
		return Contact{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Contact{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return Contact{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return Contact{}, err
	}

	return Contact{
		ID:    userID,
		Name:  dto.Name,
		Email: dto.Email,
		Phone: dto.Phone,
	}, nil
}
