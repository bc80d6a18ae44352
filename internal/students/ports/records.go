// Package ports declares the outbound interfaces the students module
// depends on.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EnrollmentRecord struct {
	ID             uuid.UUID
	TrainingName   string
	SessionStart   time.Time
	Status         string
	PriceCents     int64
	EnrollmentDate time.Time
	AttendanceRate *int
}

type PaymentRecord struct {
	ID            uuid.UUID
	AmountCents   int64
	PaymentDate   time.Time
	PaymentMethod *string
	SessionID     *uuid.UUID
}

type DocumentRecord struct {
	ID           uuid.UUID
	DocumentType string
	FileName     string
	UploadedAt   time.Time
}

// StudentRecords exposes the peripheral records shown on a student's detail
// view.
type StudentRecords interface {
	EnrollmentsForPerson(ctx context.Context, personID uuid.UUID) ([]EnrollmentRecord, error)
	PaymentsForPerson(ctx context.Context, personID uuid.UUID) ([]PaymentRecord, error)
	DocumentsForPerson(ctx context.Context, personID uuid.UUID) ([]DocumentRecord, error)
}
