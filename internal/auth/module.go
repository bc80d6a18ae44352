// Package auth wires the authentication bounded context.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"kurscrm_backend/internal/auth/handler"
	"kurscrm_backend/internal/auth/repository"
	"kurscrm_backend/internal/auth/service"
	"kurscrm_backend/internal/auth/token"
	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, token.NewManager(cfg), log, validate)
	return &Module{
		handler: handler.New(svc),
		repo:    repo,
		service: svc,
	}
}

func (m *Module) Name() string { return "auth" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1, ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterProtectedRoutes(ctx.Protected)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Repository is exposed for the scheduler's expired-token pruning task.
func (m *Module) Repository() *repository.Repository { return m.repo }
