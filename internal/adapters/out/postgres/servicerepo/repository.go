// Package servicerepo resolves catalog services referenced by bookings. The
// catalog is owned by another part of the platform; this adapter is
// read-only.
package servicerepo

import (
	"context"
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceDTO represents the database structure of catalog services.
type ServiceDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255)"`
	Price *float64
}

// TableName specifies the database table name for catalog services.
func (ServiceDTO) TableName() string {
	return "services"
}

// GormServiceCatalog implements ports.ServiceCatalog using GORM.
type GormServiceCatalog struct {
	db *gorm.DB
}

// NewGormServiceCatalog creates a new GORM service catalog.
func NewGormServiceCatalog(db *gorm.DB) *GormServiceCatalog {
	return &GormServiceCatalog{db: db}
}

// Get retrieves a catalog service by ID.
func (r *GormServiceCatalog) Get(ctx context.Context, id kernel.UUID) (ports.CatalogService, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogService{}, err
	}

	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogService{}, errs.NewObjectNotFoundError("service", id.String())
		}
		return ports.CatalogService{}, err
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.CatalogService{}, err
	}

	return ports.CatalogService{
		ID:    serviceID,
		Name:  dto.Name,
		Price: dto.Price,
	}, nil
}
