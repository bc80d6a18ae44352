package transport

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	StatusPotential EnrollmentStatus = "potential"
	StatusEnrolled  EnrollmentStatus = "enrolled"
	StatusCompleted EnrollmentStatus = "completed"
	StatusDropped   EnrollmentStatus = "dropped"
)

type CreateTrainingRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Description     string `json:"description,omitempty" validate:"max=5000"`
	DefaultDuration *int   `json:"defaultDurationWeeks,omitempty" validate:"omitempty,min=1,max=520"`
}

type UpdateTrainingRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	DefaultDuration *int    `json:"defaultDurationWeeks,omitempty" validate:"omitempty,min=1,max=520"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

type CreateSessionRequest struct {
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	InstructorID *uuid.UUID `json:"instructorId,omitempty"`
	PriceCents   int64      `json:"priceCents" validate:"min=0"`
}

type UpdateSessionRequest struct {
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	InstructorID *uuid.UUID `json:"instructorId,omitempty"`
	PriceCents   *int64     `json:"priceCents,omitempty" validate:"omitempty,min=0"`
}

type CreateEnrollmentRequest struct {
	LeadID   *uuid.UUID       `json:"leadId,omitempty"`
	PersonID *uuid.UUID       `json:"personId,omitempty"`
	Status   EnrollmentStatus `json:"status,omitempty" validate:"omitempty,oneof=potential enrolled"`
}

type UpdateEnrollmentRequest struct {
	Status         *EnrollmentStatus `json:"status,omitempty" validate:"omitempty,oneof=potential enrolled completed dropped"`
	AttendanceRate *int              `json:"attendanceRate,omitempty" validate:"omitempty,min=0,max=100"`
	InstructorNote *string           `json:"instructorNote,omitempty" validate:"omitempty,max=5000"`
}

type TrainingResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DefaultDuration *int      `json:"defaultDurationWeeks,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

type SessionResponse struct {
	ID           uuid.UUID  `json:"id"`
	TrainingID   uuid.UUID  `json:"trainingId"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	InstructorID *uuid.UUID `json:"instructorId,omitempty"`
	PriceCents   int64      `json:"priceCents"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type EnrollmentResponse struct {
	ID             uuid.UUID        `json:"id"`
	LeadID         *uuid.UUID       `json:"leadId,omitempty"`
	PersonID       *uuid.UUID       `json:"personId,omitempty"`
	SessionID      uuid.UUID        `json:"sessionId"`
	Status         EnrollmentStatus `json:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
	AttendanceRate *int             `json:"attendanceRate,omitempty"`
	InstructorNote *string          `json:"instructorNote,omitempty"`
}

type TrainingDetailResponse struct {
	Training TrainingResponse  `json:"training"`
	Sessions []SessionResponse `json:"sessions"`
}
