package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"kurscrm_backend/internal/adapters/directory"
	"kurscrm_backend/internal/adapters/records"
	"kurscrm_backend/internal/adapters/storage"
	"kurscrm_backend/internal/auth"
	"kurscrm_backend/internal/documents"
	"kurscrm_backend/internal/email"
	"kurscrm_backend/internal/events"
	apphttp "kurscrm_backend/internal/http"
	"kurscrm_backend/internal/http/router"
	"kurscrm_backend/internal/leads"
	"kurscrm_backend/internal/notification"
	"kurscrm_backend/internal/payments"
	"kurscrm_backend/internal/reports"
	"kurscrm_backend/internal/students"
	"kurscrm_backend/internal/trainings"
	"kurscrm_backend/migrations"
	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/db"
	"kurscrm_backend/platform/logger"
	"kurscrm_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
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
	dbPool, err := connectWithRetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := db.RunMigrations(ctx, cfg, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("migrations applied")

	validate := validator.New()
	bus := events.NewInMemoryBus(log)

	// Notification handlers run on the bus in-process.
	mailer := email.NewSender(cfg, log)
	notification.New(mailer, directory.New(dbPool), log).Subscribe(bus)

	recordsAdapter := records.New(dbPool)

	var store *storage.Service
	if cfg.IsMinIOEnabled() {
		store, err = storage.New(cfg, log)
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		if err := store.EnsureBuckets(ctx); err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
	} else {
		log.Warn("object storage disabled, document and photo routes not mounted")
	}

	modules := []apphttp.Module{
		auth.NewModule(dbPool, cfg, log, validate),
		leads.NewModule(dbPool, recordsAdapter, bus, cfg, log, validate),
		students.NewModule(dbPool, recordsAdapter, store, log, validate),
		trainings.NewModule(dbPool, log, validate),
		payments.NewModule(dbPool, log, validate),
		reports.NewModule(dbPool),
	}

	if store != nil {
		modules = append(modules, documents.NewModule(dbPool, store, log, validate))
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(dbPool),
		EventBus: bus,
		Modules:  modules,
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// connectWithRetry retries the database connection a few times before giving
// up, covering the window where the database container is still coming up.
func connectWithRetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	const attempts = 5

	var lastErr error
	for i := 1; i <= attempts; i++ {
		pool, err := db.NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.Warn("database not ready", "attempt", i, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i) * time.Second):
		}
	}
	return nil, fmt.Errorf("database connect: %w", lastErr)
}
