// Package service implements the training catalog, session scheduling and
// enrollment logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kurscrm_backend/internal/trainings/repository"
	"kurscrm_backend/internal/trainings/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Service struct {
	repo     *repository.Repository
	logger   *logger.Logger
	validate *validator.Validator
}

func New(repo *repository.Repository, log *logger.Logger, validate *validator.Validator) *Service {
	return &Service{repo: repo, logger: log, validate: validate}
}

func (s *Service) CreateTraining(ctx context.Context, req transport.CreateTrainingRequest) (transport.TrainingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.TrainingResponse{}, apperr.Wrap(apperr.KindValidation, "invalid training payload", err)
	}

	training, err := s.repo.CreateTraining(ctx, req.Name, optional(req.Description), req.DefaultDuration)
	if err != nil {
		return transport.TrainingResponse{}, mapRepoError(err, "trainings.CreateTraining")
	}
	return toTrainingResponse(training), nil
}

func (s *Service) GetTrainingDetail(ctx context.Context, id uuid.UUID) (transport.TrainingDetailResponse, error) {
	training, err := s.repo.GetTraining(ctx, id)
	if err != nil {
		return transport.TrainingDetailResponse{}, mapRepoError(err, "trainings.GetTrainingDetail")
	}

	sessions, err := s.repo.ListSessions(ctx, id)
	if err != nil {
		return transport.TrainingDetailResponse{}, mapRepoError(err, "trainings.GetTrainingDetail")
	}

	detail := transport.TrainingDetailResponse{
		Training: toTrainingResponse(training),
		Sessions: make([]transport.SessionResponse, 0, len(sessions)),
	}
	for _, session := range sessions {
		detail.Sessions = append(detail.Sessions, toSessionResponse(session))
	}
	return detail, nil
}

func (s *Service) ListTrainings(ctx context.Context, search string, includeInactive bool) ([]transport.TrainingResponse, error) {
	trainings, err := s.repo.ListTrainings(ctx, strings.TrimSpace(search), includeInactive)
	if err != nil {
		return nil, mapRepoError(err, "trainings.ListTrainings")
	}

	resp := make([]transport.TrainingResponse, 0, len(trainings))
	for _, t := range trainings {
		resp = append(resp, toTrainingResponse(t))
	}
	return resp, nil
}

func (s *Service) UpdateTraining(ctx context.Context, id uuid.UUID, req transport.UpdateTrainingRequest) (transport.TrainingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.TrainingResponse{}, apperr.Wrap(apperr.KindValidation, "invalid training payload", err)
	}

	training, err := s.repo.UpdateTraining(ctx, id, req.Name, req.Description, req.DefaultDuration, req.IsActive)
	if err != nil {
		return transport.TrainingResponse{}, mapRepoError(err, "trainings.UpdateTraining")
	}
	return toTrainingResponse(training), nil
}

func (s *Service) CreateSession(ctx context.Context, trainingID uuid.UUID, req transport.CreateSessionRequest) (transport.SessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.SessionResponse{}, apperr.Wrap(apperr.KindValidation, "invalid session payload", err)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return transport.SessionResponse{}, apperr.Validation("end date precedes start date")
	}

	if _, err := s.repo.GetTraining(ctx, trainingID); err != nil {
		return transport.SessionResponse{}, mapRepoError(err, "trainings.CreateSession")
	}

	session, err := s.repo.CreateSession(ctx, repository.CreateSessionParams{
		TrainingID:   trainingID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		InstructorID: req.InstructorID,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		return transport.SessionResponse{}, mapRepoError(err, "trainings.CreateSession")
	}
	return toSessionResponse(session), nil
}

func (s *Service) UpdateSession(ctx context.Context, id uuid.UUID, req transport.UpdateSessionRequest) (transport.SessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.SessionResponse{}, apperr.Wrap(apperr.KindValidation, "invalid session payload", err)
	}

	session, err := s.repo.UpdateSession(ctx, id, repository.UpdateSessionParams{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		InstructorID: req.InstructorID,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		return transport.SessionResponse{}, mapRepoError(err, "trainings.UpdateSession")
	}
	return toSessionResponse(session), nil
}

// Enroll registers a lead or a student into a session. Exactly one of the
// two subjects must be given.
func (s *Service) Enroll(ctx context.Context, sessionID uuid.UUID, req transport.CreateEnrollmentRequest) (transport.EnrollmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.EnrollmentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid enrollment payload", err)
	}
	if (req.LeadID == nil) == (req.PersonID == nil) {
		return transport.EnrollmentResponse{}, apperr.Validation("enrollment needs exactly one of leadId or personId")
	}

	if _, err := s.repo.GetSession(ctx, sessionID); err != nil {
		return transport.EnrollmentResponse{}, mapRepoError(err, "trainings.Enroll")
	}

	status := string(transport.StatusPotential)
	if req.Status != "" {
		status = string(req.Status)
	}

	enrollment, err := s.repo.CreateEnrollment(ctx, repository.CreateEnrollmentParams{
		LeadID:    req.LeadID,
		PersonID:  req.PersonID,
		SessionID: sessionID,
		Status:    status,
	})
	if err != nil {
		return transport.EnrollmentResponse{}, mapRepoError(err, "trainings.Enroll")
	}
	return toEnrollmentResponse(enrollment), nil
}

func (s *Service) ListEnrollments(ctx context.Context, sessionID uuid.UUID) ([]transport.EnrollmentResponse, error) {
	enrollments, err := s.repo.ListEnrollmentsBySession(ctx, sessionID)
	if err != nil {
		return nil, mapRepoError(err, "trainings.ListEnrollments")
	}

	resp := make([]transport.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp = append(resp, toEnrollmentResponse(e))
	}
	return resp, nil
}

func (s *Service) UpdateEnrollment(ctx context.Context, id uuid.UUID, req transport.UpdateEnrollmentRequest) (transport.EnrollmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.EnrollmentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid enrollment payload", err)
	}

	var status *string
	if req.Status != nil {
		current, err := s.repo.GetEnrollment(ctx, id)
		if err != nil {
			return transport.EnrollmentResponse{}, mapRepoError(err, "trainings.UpdateEnrollment")
		}
		if !ValidTransition(transport.EnrollmentStatus(current.Status), *req.Status) {
			return transport.EnrollmentResponse{}, apperr.Conflict(
				fmt.Sprintf("cannot move enrollment from %s to %s", current.Status, *req.Status))
		}
		value := string(*req.Status)
		status = &value
	}

	enrollment, err := s.repo.UpdateEnrollment(ctx, id, repository.UpdateEnrollmentParams{
		Status:         status,
		AttendanceRate: req.AttendanceRate,
		InstructorNote: req.InstructorNote,
	})
	if err != nil {
		return transport.EnrollmentResponse{}, mapRepoError(err, "trainings.UpdateEnrollment")
	}
	return toEnrollmentResponse(enrollment), nil
}

func (s *Service) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEnrollment(ctx, id); err != nil {
		return mapRepoError(err, "trainings.DeleteEnrollment")
	}
	return nil
}

// ValidTransition reports whether an enrollment may move between the two
// statuses. Completed is terminal; a dropped enrollment may be re-enrolled.
func ValidTransition(from, to transport.EnrollmentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case transport.StatusPotential:
		return to == transport.StatusEnrolled || to == transport.StatusDropped
	case transport.StatusEnrolled:
		return to == transport.StatusCompleted || to == transport.StatusDropped
	case transport.StatusDropped:
		return to == transport.StatusEnrolled
	default:
		return false
	}
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("training not found").WithOp(op)
	case errors.Is(err, repository.ErrSessionNotFound):
		return apperr.NotFound("training session not found").WithOp(op)
	case errors.Is(err, repository.ErrEnrollmentNotFound):
		return apperr.NotFound("enrollment not found").WithOp(op)
	default:
		return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toTrainingResponse(t repository.Training) transport.TrainingResponse {
	return transport.TrainingResponse{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		DefaultDuration: t.DefaultDuration,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
	}
}

func toSessionResponse(s repository.Session) transport.SessionResponse {
	return transport.SessionResponse{
		ID:           s.ID,
		TrainingID:   s.TrainingID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		InstructorID: s.InstructorID,
		PriceCents:   s.PriceCents,
		CreatedAt:    s.CreatedAt,
	}
}

func toEnrollmentResponse(e repository.Enrollment) transport.EnrollmentResponse {
	return transport.EnrollmentResponse{
		ID:             e.ID,
		LeadID:         e.LeadID,
		PersonID:       e.PersonID,
		SessionID:      e.SessionID,
		Status:         transport.EnrollmentStatus(e.Status),
		EnrollmentDate: e.EnrollmentDate,
		AttendanceRate: e.AttendanceRate,
		InstructorNote: e.InstructorNote,
	}
}
