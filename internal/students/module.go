// Package students wires the student bounded context.
package students

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"kurscrm_backend/internal/adapters/storage"
	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/internal/students/handler"
	"kurscrm_backend/internal/students/ports"
	"kurscrm_backend/internal/students/repository"
	"kurscrm_backend/internal/students/service"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the student bounded context. photos may be nil when object
// storage is not configured.
func NewModule(pool *pgxpool.Pool, records ports.StudentRecords, photos *storage.Service, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, records, photos, log, validate)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string { return "students" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Service exposes the student service for cross-module consumers.
func (m *Module) Service() *service.Service { return m.service }
