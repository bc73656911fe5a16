// Package assignmentrepo maps assignment aggregates to the assignments table.
package assignmentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID          uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt        time.Time `gorm:"not null"`
	Status            string    `gorm:"type:varchar(20);not null"`
	RejectionReason   *string   `gorm:"type:varchar(500)"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                a.ID().Bytes(),
		DriverID:          a.DriverID().Bytes(),
		DeliveryRequestID: a.DeliveryRequestID().Bytes(),
		AssignedAt:        a.AssignedAt(),
		Status:            a.Status().String(),
		RejectionReason:   a.RejectionReason(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.DeliveryRequestID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, driverID, requestID, dto.AssignedAt.UTC(), status, dto.RejectionReason)
}
