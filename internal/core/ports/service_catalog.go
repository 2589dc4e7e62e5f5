package ports

import (
	"context"

	"fieldwork/internal/core/domain/model/kernel"
)

// CatalogService is the read-only slice of a catalog service the assignment
// flow needs: the display name for responses and the list price as the
// earnings fallback when a booking carries no quote.
type CatalogService struct {
	ID    kernel.UUID
	Name  string
	Price *float64
}

// ServiceCatalog resolves catalog services referenced by bookings.
type ServiceCatalog interface {
	// Get retrieves a catalog service by its identifier.
	// Returns errs.ObjectNotFoundError when no such service exists.
	Get(ctx context.Context, id kernel.UUID) (CatalogService, error)
}
