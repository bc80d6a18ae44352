package service

import (
	"context"

	"github.com/google/uuid"

	"kurscrm_backend/internal/students/transport"
	"kurscrm_backend/platform/apperr"
)

// PhotosEnabled reports whether object storage is configured for photos.
func (s *Service) PhotosEnabled() bool { return s.photos != nil }

// UploadPhoto reserves an object key for the student's photo and returns a
// presigned PUT URL. A previous photo object is removed; keys embed the file
// name, so re-uploading under a new name would otherwise strand the old one.
func (s *Service) UploadPhoto(ctx context.Context, id uuid.UUID, req transport.UploadPhotoRequest) (transport.UploadPhotoResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.UploadPhotoResponse{}, apperr.Wrap(apperr.KindValidation, "invalid photo payload", err)
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.UploadPhotoResponse{}, mapRepoError(err, "students.UploadPhoto")
	}

	key := s.photos.NewPhotoKey(id, req.FileName)
	uploadURL, err := s.photos.PresignPhotoUpload(ctx, key)
	if err != nil {
		return transport.UploadPhotoResponse{}, apperr.Wrap(apperr.KindInternal, "object storage failure", err).WithOp("students.UploadPhoto")
	}

	if err := s.repo.SetPhotoKey(ctx, id, &key); err != nil {
		return transport.UploadPhotoResponse{}, mapRepoError(err, "students.UploadPhoto")
	}

	if student.PhotoKey != nil && *student.PhotoKey != key {
		if err := s.photos.RemovePhoto(ctx, *student.PhotoKey); err != nil {
			s.logger.Error("stranded photo after replace", "key", *student.PhotoKey, "error", err)
		}
	}

	return transport.UploadPhotoResponse{
		PhotoKey:  key,
		UploadURL: uploadURL,
	}, nil
}

// DeletePhoto clears the student's photo key and removes the object.
func (s *Service) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, "students.DeletePhoto")
	}
	if student.PhotoKey == nil {
		return nil
	}

	if err := s.repo.SetPhotoKey(ctx, id, nil); err != nil {
		return mapRepoError(err, "students.DeletePhoto")
	}

	if err := s.photos.RemovePhoto(ctx, *student.PhotoKey); err != nil {
		s.logger.Error("stranded photo after delete", "key", *student.PhotoKey, "error", err)
	}
	return nil
}
