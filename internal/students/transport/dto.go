package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	City      string `json:"city,omitempty" validate:"omitempty,max=100"`
	Notes     string `json:"notes,omitempty" validate:"max=5000"`
}

type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type ListStudentsRequest struct {
	Search          string `form:"q"`
	IncludeInactive bool   `form:"include_inactive"`
}

type UploadPhotoRequest struct {
	FileName string `json:"fileName" validate:"required,min=1,max=255"`
}

// UploadPhotoResponse carries the reserved object key and the presigned URL
// the client PUTs the image to.
type UploadPhotoResponse struct {
	PhotoKey  string `json:"photoKey"`
	UploadURL string `json:"uploadUrl"`
}

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	City      *string   `json:"city,omitempty"`
	PhotoKey  *string   `json:"photoKey,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type StudentListResponse struct {
	Items []StudentResponse `json:"items"`
	Total int               `json:"total"`
}

type EnrollmentSummary struct {
	ID             uuid.UUID `json:"id"`
	TrainingName   string    `json:"trainingName"`
	SessionStart   time.Time `json:"sessionStart"`
	Status         string    `json:"status"`
	PriceCents     int64     `json:"priceCents"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	AttendanceRate *int      `json:"attendanceRate,omitempty"`
}

type PaymentSummary struct {
	ID            uuid.UUID  `json:"id"`
	AmountCents   int64      `json:"amountCents"`
	PaymentDate   time.Time  `json:"paymentDate"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
}

type DocumentSummary struct {
	ID           uuid.UUID `json:"id"`
	DocumentType string    `json:"documentType"`
	FileName     string    `json:"fileName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type FinancialSummary struct {
	EnrolledTotalCents int64 `json:"enrolledTotalCents"`
	PaidTotalCents     int64 `json:"paidTotalCents"`
	BalanceCents       int64 `json:"balanceCents"`
}

type StudentDetailResponse struct {
	Student     StudentResponse     `json:"student"`
	SourceLead  *uuid.UUID          `json:"sourceLeadId,omitempty"`
	Enrollments []EnrollmentSummary `json:"enrollments"`
	Payments    []PaymentSummary    `json:"payments"`
	Documents   []DocumentSummary   `json:"documents"`
	Financials  FinancialSummary    `json:"financials"`
}
