// Package service implements payment recording.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"kurscrm_backend/internal/payments/repository"
	"kurscrm_backend/internal/payments/transport"
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

func (s *Service) Create(ctx context.Context, req transport.CreatePaymentRequest) (transport.PaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.PaymentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid payment payload", err)
	}
	if req.LeadID == nil && req.PersonID == nil {
		return transport.PaymentResponse{}, apperr.Validation("payment needs a lead or a person")
	}

	payment, err := s.repo.Create(ctx, repository.CreateParams{
		LeadID:        req.LeadID,
		PersonID:      req.PersonID,
		SessionID:     req.SessionID,
		AmountCents:   req.AmountCents,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: optional(req.PaymentMethod),
		Note:          optional(req.Note),
	})
	if err != nil {
		return transport.PaymentResponse{}, mapRepoError(err, "payments.Create")
	}

	s.logger.Info("payment recorded", "payment_id", payment.ID, "amount_cents", payment.AmountCents)
	return toResponse(payment), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.PaymentResponse, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PaymentResponse{}, mapRepoError(err, "payments.Get")
	}
	return toResponse(payment), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePaymentRequest) (transport.PaymentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.PaymentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid payment payload", err)
	}

	payment, err := s.repo.Update(ctx, id, repository.UpdateParams{
		AmountCents:   req.AmountCents,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		return transport.PaymentResponse{}, mapRepoError(err, "payments.Update")
	}
	return toResponse(payment), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "payments.Delete")
	}
	return nil
}

func mapRepoError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("payment not found").WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toResponse(p repository.Payment) transport.PaymentResponse {
	return transport.PaymentResponse{
		ID:            p.ID,
		LeadID:        p.LeadID,
		PersonID:      p.PersonID,
		SessionID:     p.SessionID,
		AmountCents:   p.AmountCents,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
	}
}
