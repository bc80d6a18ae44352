// Package service implements document metadata handling backed by object
// storage. File contents never pass through the API; clients upload and
// download via presigned URLs.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"kurscrm_backend/internal/adapters/storage"
	"kurscrm_backend/internal/documents/repository"
	"kurscrm_backend/internal/documents/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Service struct {
	repo     *repository.Repository
	storage  *storage.Service
	logger   *logger.Logger
	validate *validator.Validator
}

func New(repo *repository.Repository, store *storage.Service, log *logger.Logger, validate *validator.Validator) *Service {
	return &Service{repo: repo, storage: store, logger: log, validate: validate}
}

func (s *Service) Create(ctx context.Context, req transport.CreateDocumentRequest) (transport.CreateDocumentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.CreateDocumentResponse{}, apperr.Wrap(apperr.KindValidation, "invalid document payload", err)
	}
	if req.LeadID == nil && req.PersonID == nil {
		return transport.CreateDocumentResponse{}, apperr.Validation("document needs a lead or a person")
	}

	key := s.storage.NewDocumentKey(req.FileName)

	document, err := s.repo.Create(ctx, repository.CreateParams{
		LeadID:       req.LeadID,
		PersonID:     req.PersonID,
		EnrollmentID: req.EnrollmentID,
		DocumentType: string(req.DocumentType),
		FileKey:      key,
		FileName:     req.FileName,
		Note:         optional(req.Note),
	})
	if err != nil {
		return transport.CreateDocumentResponse{}, mapRepoError(err, "documents.Create")
	}

	uploadURL, err := s.storage.PresignDocumentUpload(ctx, key)
	if err != nil {
		return transport.CreateDocumentResponse{}, apperr.Wrap(apperr.KindInternal, "object storage failure", err).WithOp("documents.Create")
	}

	return transport.CreateDocumentResponse{
		Document:  toResponse(document),
		UploadURL: uploadURL,
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.DocumentResponse, error) {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DocumentResponse{}, mapRepoError(err, "documents.Get")
	}
	return toResponse(document), nil
}

// Download returns a presigned URL for the document's file contents.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (transport.DownloadResponse, error) {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DownloadResponse{}, mapRepoError(err, "documents.Download")
	}

	downloadURL, err := s.storage.PresignDocumentDownload(ctx, document.FileKey, document.FileName)
	if err != nil {
		return transport.DownloadResponse{}, apperr.Wrap(apperr.KindInternal, "object storage failure", err).WithOp("documents.Download")
	}
	return transport.DownloadResponse{DownloadURL: downloadURL}, nil
}

// Delete removes the metadata row first, then the object. A stranded object
// after a crash is harmless; a row without an object would break downloads.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, "documents.Delete")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "documents.Delete")
	}

	if err := s.storage.RemoveDocument(ctx, document.FileKey); err != nil {
		s.logger.Error("stranded object after document delete", "key", document.FileKey, "error", err)
	}
	return nil
}

func mapRepoError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("document not found").WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func toResponse(d repository.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:           d.ID,
		LeadID:       d.LeadID,
		PersonID:     d.PersonID,
		EnrollmentID: d.EnrollmentID,
		DocumentType: transport.DocumentType(d.DocumentType),
		FileName:     d.FileName,
		Note:         d.Note,
		UploadedAt:   d.UploadedAt,
	}
}
