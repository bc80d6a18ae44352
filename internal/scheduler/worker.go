package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	authrepo "kurscrm_backend/internal/auth/repository"
	"kurscrm_backend/internal/events"
	"kurscrm_backend/platform/logger"
)

// Worker processes the periodic maintenance tasks. timezone is the school's
// IANA zone; "today" in the follow-up scan is resolved there, matching the
// follow_up_today filter on the API side.
type Worker struct {
	pool     *pgxpool.Pool
	bus      events.Bus
	authRepo *authrepo.Repository
	timezone string
	logger   *logger.Logger
}

func NewWorker(pool *pgxpool.Pool, bus events.Bus, authRepo *authrepo.Repository, timezone string, log *logger.Logger) *Worker {
	return &Worker{pool: pool, bus: bus, authRepo: authRepo, timezone: timezone, logger: log}
}

// Register mounts the task handlers on the asynq mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeFollowUpScan, w.HandleFollowUpScan)
	mux.HandleFunc(TypeTokenPrune, w.HandleTokenPrune)
}

const followUpScanQuery = `
	SELECT id, first_name, last_name, next_follow_up
	FROM leads
	WHERE next_follow_up = (now() AT TIME ZONE $1)::date
	AND lead_stage NOT IN ('converted', 'lost')`

// HandleFollowUpScan emits a LeadFollowUpDue event for every open lead whose
// follow-up date is today in the school's timezone. Notification handlers on
// the bus turn these into mail; running the scan twice on the same day sends
// duplicate reminders, which the daily schedule prevents.
func (w *Worker) HandleFollowUpScan(ctx context.Context, _ *asynq.Task) error {
	rows, err := w.pool.Query(ctx, followUpScanQuery, w.timezone)
	if err != nil {
		return fmt.Errorf("follow-up scan query: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			id                  uuid.UUID
			firstName, lastName string
			dueDate             time.Time
		)
		if err := rows.Scan(&id, &firstName, &lastName, &dueDate); err != nil {
			return fmt.Errorf("follow-up scan scan: %w", err)
		}

		if err := w.bus.PublishSync(ctx, events.LeadFollowUpDue{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    id,
			FullName:  firstName + " " + lastName,
			DueDate:   dueDate,
		}); err != nil {
			w.logger.Error("follow-up event handling failed", "lead_id", id, "error", err)
		}
		count++
	}
	if rows.Err() != nil {
		return rows.Err()
	}

	w.logger.Info("follow-up scan complete", "due_leads", count)
	return nil
}

func (w *Worker) HandleTokenPrune(ctx context.Context, _ *asynq.Task) error {
	pruned, err := w.authRepo.PruneExpired(ctx)
	if err != nil {
		return fmt.Errorf("token prune: %w", err)
	}
	if pruned > 0 {
		w.logger.Info("expired refresh tokens pruned", "count", pruned)
	}
	return nil
}
