// Package outboxrepo persists pending earnings credits. A credit row is
// written in the transaction that completes an assignment and marked applied
// when the worker's totals are incremented, so a lost post-commit step can
// always be reconciled from the table.
package outboxrepo

import (
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"

	"github.com/google/uuid"
)

// EarningsCreditDTO represents the database structure of a pending earnings
// credit.
type EarningsCreditDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	WorkerID     uuid.UUID `gorm:"type:uuid;index"`
	Amount       float64
	CreatedAt    time.Time `gorm:"index"`
	AppliedAt    *time.Time
}

// TableName specifies the database table name for earnings credits.
func (EarningsCreditDTO) TableName() string {
	return "earnings_credits"
}

func fromPort(credit ports.EarningsCredit) EarningsCreditDTO {
	return EarningsCreditDTO{
		ID:           credit.ID.Bytes(),
		AssignmentID: credit.AssignmentID.Bytes(),
		WorkerID:     credit.WorkerID.Bytes(),
		Amount:       credit.Amount,
		CreatedAt:    credit.CreatedAt,
		AppliedAt:    credit.AppliedAt,
	}
}

func toPort(dto EarningsCreditDTO) (ports.EarningsCredit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.EarningsCredit{}, err
	}
	assignmentID, err := kernel.UUIDFromBytes(dto.AssignmentID[:])
	if err != nil {
		return ports.EarningsCredit{}, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return ports.EarningsCredit{}, err
	}

	return ports.EarningsCredit{
		ID:           id,
		AssignmentID: assignmentID,
		WorkerID:     workerID,
		Amount:       dto.Amount,
		CreatedAt:    dto.CreatedAt,
		AppliedAt:    dto.AppliedAt,
	}, nil
}
