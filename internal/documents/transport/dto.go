package transport

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	TypeCertificate      DocumentType = "certificate"
	TypeRegistrationForm DocumentType = "registration_form"
	TypePaymentReceipt   DocumentType = "payment_receipt"
	TypeHomework         DocumentType = "homework"
	TypePhoto            DocumentType = "photo"
	TypeOther            DocumentType = "other"
)

type CreateDocumentRequest struct {
	LeadID       *uuid.UUID   `json:"leadId,omitempty"`
	PersonID     *uuid.UUID   `json:"personId,omitempty"`
	EnrollmentID *uuid.UUID   `json:"enrollmentId,omitempty"`
	DocumentType DocumentType `json:"documentType" validate:"required,oneof=certificate registration_form payment_receipt homework photo other"`
	FileName     string       `json:"fileName" validate:"required,min=1,max=255"`
	Note         string       `json:"note,omitempty" validate:"max=2000"`
}

type DocumentResponse struct {
	ID           uuid.UUID    `json:"id"`
	LeadID       *uuid.UUID   `json:"leadId,omitempty"`
	PersonID     *uuid.UUID   `json:"personId,omitempty"`
	EnrollmentID *uuid.UUID   `json:"enrollmentId,omitempty"`
	DocumentType DocumentType `json:"documentType"`
	FileName     string       `json:"fileName"`
	Note         *string      `json:"note,omitempty"`
	UploadedAt   time.Time    `json:"uploadedAt"`
}

// CreateDocumentResponse pairs the stored record with the URL the client
// uploads the file contents to.
type CreateDocumentResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}
