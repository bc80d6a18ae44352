// The scheduler binary runs the asynq worker plus the periodic task
// schedule. It shares the database and event bus wiring with the API but
// serves no HTTP traffic.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"kurscrm_backend/internal/adapters/directory"
	authrepo "kurscrm_backend/internal/auth/repository"
	"kurscrm_backend/internal/email"
	"kurscrm_backend/internal/events"
	"kurscrm_backend/internal/notification"
	"kurscrm_backend/internal/scheduler"
	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/db"
	"kurscrm_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.RedisURL == "" {
		fmt.Fprintln(os.Stderr, "REDIS_URL is required for the scheduler")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	mailer := email.NewSender(cfg, log)
	notification.New(mailer, directory.New(pool), log).Subscribe(bus)

	redisOpt, err := scheduler.RedisConnOpt(cfg)
	if err != nil {
		return err
	}

	worker := scheduler.NewWorker(pool, bus, authrepo.New(pool), cfg.GetTimezone(), log)
	mux := asynq.NewServeMux()
	worker.Register(mux)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.AsynqConcurrency,
		Queues:      map[string]int{cfg.AsynqQueueName: 1},
	})

	periodic := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
	queue := asynq.Queue(cfg.AsynqQueueName)
	if _, err := periodic.Register("0 8 * * *", scheduler.NewFollowUpScanTask(), queue); err != nil {
		return fmt.Errorf("register follow-up scan: %w", err)
	}
	if _, err := periodic.Register("15 * * * *", scheduler.NewTokenPruneTask(), queue); err != nil {
		return fmt.Errorf("register token prune: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("worker starting", "queue", cfg.AsynqQueueName, "concurrency", cfg.AsynqConcurrency)
		return server.Run(mux)
	})

	g.Go(func() error {
		return periodic.Run()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		periodic.Shutdown()
		server.Shutdown()
		// Give in-flight tasks a moment before the process exits.
		time.Sleep(time.Second)
		return nil
	})

	return g.Wait()
}
