// Package app assembles the contest bot: infrastructure via the shared
// bootstrap pipeline, then the domain services and dialog handlers.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"contestbot/core/bootstrap"
	corecmd "contestbot/core/cmd"
	coretelegram "contestbot/core/telegram"
	"contestbot/internal/auth"
	"contestbot/internal/bot"
	"contestbot/internal/config"
	"contestbot/internal/repository"
	"contestbot/internal/service"
	"contestbot/internal/session"
)

// App is the fully wired bot, ready to produce telegram run options.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	handlers *bot.Handlers
}

// New runs the bootstrap pipeline (logger, database, migrations) and wires
// the domain on top of it.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	infra, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := repository.New(infra.DB)
	handlers := bot.New(bot.Options{
		Sessions: session.NewStore(),
		Contests: service.NewContests(repo, nil),
		Pending:  service.NewPending(repo),
		Tracked:  service.NewTracked(repo),
		Auth:     auth.NewAllowList(cfg.Bot.Admins),
		PageSize: cfg.Bot.PageSize,
	})

	return &App{
		cfg:      cfg,
		db:       infra.DB,
		handlers: handlers,
	}, nil
}

// TelegramRunOptions builds the transport configuration for the shared runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := a.handlers.BuildRegistry()
	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      a.handlers.Routes(reg),
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

var _ corecmd.TelegramApp = (*App)(nil)
