// Package reports exposes aggregate read models for the admin dashboard.
// The module is read-only and queries across contexts, so it keeps a flat
// layout instead of the handler/service/repository split.
package reports

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "kurscrm_backend/internal/http"
)

type Module struct {
	handler *Handler
}

func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{handler: NewHandler(NewRepository(pool))}
}

func (m *Module) Name() string { return "reports" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected, ctx.Admin)
}
