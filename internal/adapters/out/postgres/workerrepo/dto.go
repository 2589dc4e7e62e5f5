// Package workerrepo provides data transfer objects and mapping functions
// for worker profile persistence.
package workerrepo

import (
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure of worker profiles. The
// running totals are only ever changed through the atomic increment, never
// written back from a loaded aggregate.
type WorkerDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name               string    `gorm:"type:varchar(255)"`
	Phone              string    `gorm:"type:varchar(32)"`
	Email              string    `gorm:"type:varchar(255)"`
	CompletedJobCount  int
	CumulativeEarnings float64
}

// TableName specifies the database table name for worker profiles.
func (WorkerDTO) TableName() string {
	return "workers"
}

// toDomain converts a database DTO to a worker domain entity.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(
		id, userID,
		dto.Name, dto.Phone, dto.Email,
		dto.CompletedJobCount, dto.CumulativeEarnings,
	)
}
