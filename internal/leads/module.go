// Package leads wires the lead bounded context: repository, service,
// handler, and route registration.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"kurscrm_backend/internal/events"
	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/internal/leads/handler"
	"kurscrm_backend/internal/leads/ports"
	"kurscrm_backend/internal/leads/repository"
	"kurscrm_backend/internal/leads/service"
	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, records ports.LeadRecords, bus events.Bus, clock config.ClockConfig, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, records, bus, clock.GetLocation(), log, validate)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string { return "leads" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Service exposes the lead service for cross-module consumers such as the
// scheduler worker.
func (m *Module) Service() *service.Service { return m.service }
