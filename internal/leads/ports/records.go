// Package ports declares the outbound interfaces the leads module depends
// on. Implementations live in internal/adapters and are wired in main.
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
}

type DocumentRecord struct {
	ID           uuid.UUID
	DocumentType string
	FileName     string
	UploadedAt   time.Time
}

type PaymentRecord struct {
	ID            uuid.UUID
	AmountCents   int64
	PaymentDate   time.Time
	PaymentMethod *string
	SessionID     *uuid.UUID
}

// LeadRecords exposes the peripheral records shown on a lead's detail view.
// Each method returns an empty slice, not an error, when the lead has none.
type LeadRecords interface {
	EnrollmentsForLead(ctx context.Context, leadID uuid.UUID) ([]EnrollmentRecord, error)
	DocumentsForLead(ctx context.Context, leadID uuid.UUID) ([]DocumentRecord, error)
	PaymentsForLead(ctx context.Context, leadID uuid.UUID) ([]PaymentRecord, error)
}
