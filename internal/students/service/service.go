// Package service implements the student domain logic.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"kurscrm_backend/internal/adapters/storage"
	"kurscrm_backend/internal/students/ports"
	"kurscrm_backend/internal/students/repository"
	"kurscrm_backend/internal/students/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/phone"
	"kurscrm_backend/platform/validator"
)

type Service struct {
	repo     *repository.Repository
	records  ports.StudentRecords
	photos   *storage.Service
	logger   *logger.Logger
	validate *validator.Validator
}

// New builds the student service. photos may be nil when object storage is
// not configured; the photo endpoints are then not mounted.
func New(repo *repository.Repository, records ports.StudentRecords, photos *storage.Service, log *logger.Logger, validate *validator.Validator) *Service {
	return &Service{repo: repo, records: records, photos: photos, logger: log, validate: validate}
}

func (s *Service) Create(ctx context.Context, req transport.CreateStudentRequest) (transport.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.StudentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid student payload", err)
	}

	student, err := s.repo.Create(ctx, repository.CreateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     optional(req.Email),
		Phone:     normalizedPhone(req.Phone),
		City:      optional(req.City),
		Notes:     optional(req.Notes),
	})
	if err != nil {
		return transport.StudentResponse{}, mapRepoError(err, "students.Create")
	}
	return toResponse(student), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.StudentResponse{}, mapRepoError(err, "students.Get")
	}
	return toResponse(student), nil
}

func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.StudentDetailResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.StudentDetailResponse{}, mapRepoError(err, "students.GetDetail")
	}

	sourceLead, err := s.repo.SourceLead(ctx, id)
	if err != nil {
		return transport.StudentDetailResponse{}, mapRepoError(err, "students.GetDetail")
	}

	enrollments, err := s.records.EnrollmentsForPerson(ctx, id)
	if err != nil {
		return transport.StudentDetailResponse{}, mapRepoError(err, "students.GetDetail")
	}
	payments, err := s.records.PaymentsForPerson(ctx, id)
	if err != nil {
		return transport.StudentDetailResponse{}, mapRepoError(err, "students.GetDetail")
	}
	documents, err := s.records.DocumentsForPerson(ctx, id)
	if err != nil {
		return transport.StudentDetailResponse{}, mapRepoError(err, "students.GetDetail")
	}

	detail := transport.StudentDetailResponse{
		Student:     toResponse(student),
		SourceLead:  sourceLead,
		Enrollments: make([]transport.EnrollmentSummary, 0, len(enrollments)),
		Payments:    make([]transport.PaymentSummary, 0, len(payments)),
		Documents:   make([]transport.DocumentSummary, 0, len(documents)),
	}

	for _, e := range enrollments {
		detail.Enrollments = append(detail.Enrollments, transport.EnrollmentSummary{
			ID:             e.ID,
			TrainingName:   e.TrainingName,
			SessionStart:   e.SessionStart,
			Status:         e.Status,
			PriceCents:     e.PriceCents,
			EnrollmentDate: e.EnrollmentDate,
			AttendanceRate: e.AttendanceRate,
		})
		if e.Status == "enrolled" || e.Status == "completed" {
			detail.Financials.EnrolledTotalCents += e.PriceCents
		}
	}
	for _, p := range payments {
		detail.Payments = append(detail.Payments, transport.PaymentSummary{
			ID:            p.ID,
			AmountCents:   p.AmountCents,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			SessionID:     p.SessionID,
		})
		detail.Financials.PaidTotalCents += p.AmountCents
	}
	for _, d := range documents {
		detail.Documents = append(detail.Documents, transport.DocumentSummary{
			ID:           d.ID,
			DocumentType: d.DocumentType,
			FileName:     d.FileName,
			UploadedAt:   d.UploadedAt,
		})
	}
	detail.Financials.BalanceCents = detail.Financials.EnrolledTotalCents - detail.Financials.PaidTotalCents

	return detail, nil
}

func (s *Service) List(ctx context.Context, req transport.ListStudentsRequest) (transport.StudentListResponse, error) {
	students, err := s.repo.List(ctx, req.Search, req.IncludeInactive)
	if err != nil {
		return transport.StudentListResponse{}, mapRepoError(err, "students.List")
	}

	resp := transport.StudentListResponse{
		Items: make([]transport.StudentResponse, 0, len(students)),
		Total: len(students),
	}
	for _, student := range students {
		resp.Items = append(resp.Items, toResponse(student))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateStudentRequest) (transport.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.StudentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid student payload", err)
	}

	student, err := s.repo.Update(ctx, id, repository.UpdateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     normalizedPhonePtr(req.Phone),
		City:      req.City,
		Notes:     req.Notes,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return transport.StudentResponse{}, mapRepoError(err, "students.Update")
	}
	return toResponse(student), nil
}

// Deactivate soft-disables the student. Records stay linked; the student
// simply drops out of the default listing.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := s.repo.Update(ctx, id, repository.UpdateParams{IsActive: &inactive})
	if err != nil {
		return mapRepoError(err, "students.Deactivate")
	}
	return nil
}

func mapRepoError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("student not found").WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func normalizedPhone(raw string) *string {
	if raw == "" {
		return nil
	}
	normalized := phone.NormalizeE164(raw)
	return &normalized
}

func normalizedPhonePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	return normalizedPhone(*raw)
}

func toResponse(s repository.Student) transport.StudentResponse {
	return transport.StudentResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Phone:     s.Phone,
		City:      s.City,
		PhotoKey:  s.PhotoKey,
		Notes:     s.Notes,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
