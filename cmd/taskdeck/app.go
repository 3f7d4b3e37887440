package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/password"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// app holds the components shared by the subcommands.
type app struct {
	db       *sql.DB
	logger   *slog.Logger
	sessions *session.Manager
	auth     *service.AuthService
	tasks    *service.TaskService
}

// openApp opens the database, applying migrations, and wires the services.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.Database.Path, store.Options{BusyTimeout: cfg.Database.BusyTimeout})
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(sqlite.NewSessionRepository(db), session.Options{
		Lifetime: cfg.Auth.SessionLifetime,
		Secure:   cfg.Production(),
	})
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	return &app{
		db:       db,
		logger:   logger,
		sessions: sessions,
		auth:     service.NewAuthService(sqlite.NewUserRepository(db), sessions, hasher, time.Now),
		tasks:    service.NewTaskService(sqlite.NewTaskRepository(db), time.Now),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
