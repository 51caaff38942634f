// Package app wires the store, services and logger shared by the HTTP
// server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nurpe/renttax/internal/boltstore"
	"github.com/nurpe/renttax/internal/config"
	"github.com/nurpe/renttax/internal/db"
	"github.com/nurpe/renttax/internal/repository"
	"github.com/nurpe/renttax/internal/service"
)

type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Store   service.Store
	Ledger  *service.LedgerService
	Tax     *service.TaxService
	Reports *service.ReportService

	close func() error
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, closeStore, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}

	taxService, err := service.NewTaxService(ctx, store, cfg.Tax.Regime, log)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to load tax regime: %w", err)
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Ledger:  service.NewLedgerService(store, log),
		Tax:     taxService,
		Reports: service.NewReportService(store, taxService, log),
		close:   closeStore,
	}, nil
}

// OpenStore opens the engine selected by DB_DRIVER. Relational engines are
// migrated on open.
func OpenStore(cfg *config.Config, log zerolog.Logger) (service.Store, func() error, error) {
	switch cfg.DB.Driver {
	case config.DriverBolt:
		store, err := boltstore.Open(cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("driver", cfg.DB.Driver).Str("path", cfg.DB.DSN).Msg("database ready")
		return store, store.Close, nil
	default:
		database, err := db.New(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewStore(database), func() error { return db.Close(database) }, nil
	}
}

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
