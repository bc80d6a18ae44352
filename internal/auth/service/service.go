// Package service implements authentication and user administration.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"kurscrm_backend/internal/auth/password"
	"kurscrm_backend/internal/auth/repository"
	"kurscrm_backend/internal/auth/token"
	"kurscrm_backend/internal/auth/transport"
	"kurscrm_backend/platform/apperr"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Service struct {
	repo     *repository.Repository
	tokens   *token.Manager
	logger   *logger.Logger
	validate *validator.Validator
}

func New(repo *repository.Repository, tokens *token.Manager, log *logger.Logger, validate *validator.Validator) *Service {
	return &Service{repo: repo, tokens: tokens, logger: log, validate: validate}
}

func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindValidation, "invalid login payload", err)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// Same response for unknown email and wrong password.
		s.logger.AuthEvent("login_failed", req.Email, false, "unknown email")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.Login")
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		s.logger.AuthEvent("login_failed", req.Email, false, "wrong password")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	s.logger.AuthEvent("login", user.Email, true, "")
	return transport.LoginResponse{
		User:   toUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh rotates the token pair. The presented refresh token is consumed;
// presenting it twice fails the second time.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (transport.TokenPairResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.TokenPairResponse{}, apperr.Wrap(apperr.KindValidation, "invalid refresh payload", err)
	}

	userID, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	ownerID, err := s.repo.ConsumeRefreshToken(ctx, token.Hash(req.RefreshToken))
	if errors.Is(err, repository.ErrTokenNotFound) {
		// Replay of a consumed token. Revoke the whole session family.
		s.logger.AuthEvent("refresh_replay", userID.String(), false, "token reuse")
		_ = s.repo.RevokeAllForUser(ctx, userID)
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.Refresh")
	}
	if ownerID != userID {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.Logout")
	}
	return nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, mapUserError(err, "auth.Me")
	}
	return toUserResponse(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req transport.ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid password payload", err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return mapUserError(err, "auth.ChangePassword")
	}
	if !password.Verify(user.PasswordHash, req.CurrentPassword) {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "password hashing failed", err).WithOp("auth.ChangePassword")
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return mapUserError(err, "auth.ChangePassword")
	}

	// Old sessions die with the old password.
	return s.Logout(ctx, userID)
}

func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindValidation, "invalid user payload", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "password hashing failed", err).WithOp("auth.CreateUser")
	}

	user, err := s.repo.CreateUser(ctx, req.Email, hash, req.FullName, req.Role)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return transport.UserResponse{}, apperr.Conflict("email already registered")
	}
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.CreateUser")
	}
	return toUserResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.ListUsers")
	}

	resp := make([]transport.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	return resp, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindValidation, "invalid user payload", err)
	}

	user, err := s.repo.UpdateUser(ctx, id, req.FullName, req.Role)
	if err != nil {
		return transport.UserResponse{}, mapUserError(err, "auth.UpdateUser")
	}
	return toUserResponse(user), nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (transport.TokenPairResponse, error) {
	pair, err := s.tokens.Issue(user.ID, []string{user.Role})
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Wrap(apperr.KindInternal, "token issuance failed", err).WithOp("auth.issueTokens")
	}

	if err := s.repo.StoreRefreshToken(ctx, pair.RefreshHash, user.ID, pair.RefreshExpiresAt); err != nil {
		return transport.TokenPairResponse{}, apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp("auth.issueTokens")
	}

	return transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpiresAt,
	}, nil
}

func mapUserError(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found").WithOp(op)
	}
	return apperr.Wrap(apperr.KindInternal, "storage failure", err).WithOp(op)
}

func toUserResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
