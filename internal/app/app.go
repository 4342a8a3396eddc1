package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RichardMcSorley/breather/internal/amqp"
	"github.com/RichardMcSorley/breather/internal/config"
	"github.com/RichardMcSorley/breather/internal/database"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	db        *pgxpool.Pool
	publisher *amqp.Publisher
	deps      *Dependencies
	router    *mux.Router
	srv       *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	deps := BuildDependencies(db, cfg)

	var publisher *amqp.Publisher
	if cfg.Broker.Url != "" {
		publisher, err = amqp.NewPublisher(cfg.Broker.Url, cfg.Broker.Exchange)
		if err != nil {
			deps.Close()
			db.Close()
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		deps.ForwardEvents(publisher, cfg.Broker.RoutingKey)
	} else {
		log.Info("Message broker not configured, events stay in process")
	}

	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, publisher: publisher, deps: deps, router: r, srv: srv}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	}
}

func (a *Application) close() {
	a.deps.Close()
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.Warnf("failed to close message broker connection: %v", err)
		}
	}
	a.db.Close()
}
