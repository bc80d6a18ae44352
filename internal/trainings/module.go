// Package trainings wires the training catalog bounded context.
package trainings

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/internal/trainings/handler"
	"kurscrm_backend/internal/trainings/repository"
	"kurscrm_backend/internal/trainings/service"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log, validate)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string { return "trainings" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

func (m *Module) Service() *service.Service { return m.service }
