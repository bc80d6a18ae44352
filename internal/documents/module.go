// Package documents wires the document bounded context.
package documents

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"kurscrm_backend/internal/adapters/storage"
	"kurscrm_backend/internal/documents/handler"
	"kurscrm_backend/internal/documents/repository"
	"kurscrm_backend/internal/documents/service"
	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, store *storage.Service, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, log, validate)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string { return "documents" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

func (m *Module) Service() *service.Service { return m.service }
