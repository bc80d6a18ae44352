package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	LeadID        *uuid.UUID `json:"leadId,omitempty"`
	PersonID      *uuid.UUID `json:"personId,omitempty"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
	AmountCents   int64      `json:"amountCents" validate:"required,min=1"`
	PaymentDate   time.Time  `json:"paymentDate" validate:"required"`
	PaymentMethod string     `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card transfer other"`
	Note          string     `json:"note,omitempty" validate:"max=2000"`
}

type UpdatePaymentRequest struct {
	AmountCents   *int64     `json:"amountCents,omitempty" validate:"omitempty,min=1"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	PaymentMethod *string    `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card transfer other"`
	Note          *string    `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	LeadID        *uuid.UUID `json:"leadId,omitempty"`
	PersonID      *uuid.UUID `json:"personId,omitempty"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
	AmountCents   int64      `json:"amountCents"`
	PaymentDate   time.Time  `json:"paymentDate"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	Note          *string    `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
