// Package assignmentrepo provides data transfer objects and mapping functions
// for assignment persistence. It implements the repository pattern for the
// assignment aggregate, handling the conversion between domain entities and
// database representations.
package assignmentrepo

import (
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AssignmentDTO represents the database structure for persisting assignment
// aggregates. Status is stored as its snake_case string so the conditional
// status update and the read-model filters work on the same representation.
type AssignmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID       uuid.UUID `gorm:"type:uuid;index"`
	WorkerID        uuid.UUID `gorm:"type:uuid;index"`
	AssignedBy      uuid.UUID `gorm:"type:uuid"`
	Status          string    `gorm:"type:varchar(20);index"`
	AssignedAt      time.Time `gorm:"index"`
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	AssignmentNotes string `gorm:"type:text"`
	AcceptanceNotes string `gorm:"type:text"`
	RejectionNotes  string `gorm:"type:text"`
	RejectionReason string `gorm:"type:text"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// CompletionReportDTO represents the worker-supplied completion record
// attached to a completed assignment.
type CompletionReportDTO struct {
	AssignmentID  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Notes         string         `gorm:"type:text"`
	MaterialsUsed pq.StringArray `gorm:"type:text[]"`
	Photos        pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for completion reports.
func (CompletionReportDTO) TableName() string {
	return "completion_reports"
}

// fromDomain converts an assignment domain aggregate to its database
// representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:              aggregate.ID().Bytes(),
		BookingID:       aggregate.BookingID().Bytes(),
		WorkerID:        aggregate.WorkerID().Bytes(),
		AssignedBy:      aggregate.AssignedBy().Bytes(),
		Status:          aggregate.Status().String(),
		AssignedAt:      aggregate.AssignedAt(),
		AcceptedAt:      aggregate.AcceptedAt(),
		RejectedAt:      aggregate.RejectedAt(),
		StartedAt:       aggregate.StartedAt(),
		CompletedAt:     aggregate.CompletedAt(),
		AssignmentNotes: aggregate.AssignmentNotes(),
		AcceptanceNotes: aggregate.AcceptanceNotes(),
		RejectionNotes:  aggregate.RejectionNotes(),
		RejectionReason: aggregate.RejectionReason(),
	}
}

// toDomain converts a database DTO back to an assignment domain aggregate
// using RestoreAssignment.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	bookingID, err := kernel.UUIDFromBytes(dto.BookingID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}
	assignedBy, err := kernel.UUIDFromBytes(dto.AssignedBy[:])
	if err != nil {
		return nil, err
	}
	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, bookingID, workerID, assignedBy,
		status,
		dto.AssignedAt,
		dto.AcceptedAt, dto.RejectedAt, dto.StartedAt, dto.CompletedAt,
		dto.AssignmentNotes, dto.AcceptanceNotes, dto.RejectionNotes, dto.RejectionReason,
	)
}

func reportFromDomain(report *assignment.CompletionReport, now time.Time) CompletionReportDTO {
	return CompletionReportDTO{
		AssignmentID:  report.AssignmentID().Bytes(),
		Notes:         report.Notes(),
		MaterialsUsed: pq.StringArray(report.MaterialsUsed()),
		Photos:        pq.StringArray(report.Photos()),
		CreatedAt:     now,
	}
}
