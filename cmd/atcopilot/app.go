package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/airspace"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/internal/config"
	"github.com/yegors/atcopilot/internal/events"
	"github.com/yegors/atcopilot/internal/planner"
	"github.com/yegors/atcopilot/internal/storage/sqlite"
	"github.com/yegors/atcopilot/pkg/logger"
)

// app owns the long-lived resources behind a planner.Service
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *sql.DB
	service *planner.Service
	closers []func() error
}

// newApp loads the reference datasets and wires the optional history and event sinks
func newApp(cfg *config.Config, log *logger.Logger, withHistory bool) (*app, error) {
	a := &app{cfg: cfg, log: log.Named("app")}

	ref, err := a.reference()
	if err != nil {
		a.Close()
		return nil, err
	}

	var rules *checklist.Table
	if cfg.Checklist.RulesFile != "" {
		if rules, err = checklist.LoadRules(cfg.Checklist.RulesFile); err != nil {
			a.Close()
			return nil, err
		}
		a.log.Info("Loaded checklist rules",
			logger.String("path", cfg.Checklist.RulesFile),
			logger.Int("rules", rules.Len()))
	}

	var opts []planner.Option
	if withHistory && cfg.Storage.HistoryEnabled {
		db, err := a.database()
		if err != nil {
			a.Close()
			return nil, err
		}
		hist, err := sqlite.NewChecklistStorage(db, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, planner.WithHistory(hist))
	}

	if cfg.Events.Enabled {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject, log)
		if err != nil {
			// Events are best effort; the service runs without them
			a.log.Warn("Event publishing disabled", logger.Error(err))
		} else {
			a.closers = append(a.closers, pub.Close)
			opts = append(opts, planner.WithPublisher(pub))
		}
	}

	a.service = planner.NewService(ref, planner.Options{
		RoutePoints:   cfg.Route.Points,
		BufferDegrees: cfg.Route.BufferDegrees,
		FISMarker:     cfg.Checklist.FISMarker,
		Rules:         rules,
	}, log, opts...)

	return a, nil
}

func (a *app) reference() (planner.Reference, error) {
	var ref planner.Reference

	switch a.cfg.Data.AirportSource {
	case config.AirportSourceGeoJSON:
		idx, err := airport.LoadIndex(a.cfg.Data.AirportsFile, a.log)
		if err != nil {
			return ref, err
		}
		ref.Airports = idx
	case config.AirportSourceSQLite:
		db, err := a.database()
		if err != nil {
			return ref, err
		}
		store, err := sqlite.NewAirportStorage(db, a.log)
		if err != nil {
			return ref, err
		}
		ref.Airports = store
	case config.AirportSourceOpenAIP:
		ref.Airports = airport.NewOpenAIPClient(
			a.cfg.OpenAIP.APIBaseURL,
			a.cfg.OpenAIP.APIKey,
			a.cfg.OpenAIP.Country,
			a.cfg.OpenAIP.SearchLimit,
			time.Duration(a.cfg.OpenAIP.RequestTimeoutSeconds)*time.Second,
			a.log,
		)
	default:
		return ref, fmt.Errorf("unsupported airport source %q", a.cfg.Data.AirportSource)
	}

	if a.cfg.Data.AirspacesFile == "" {
		a.log.Warn("No airspace dataset configured, en-route frequencies will be empty")
		return ref, nil
	}
	set, err := airspace.Load(a.cfg.Data.AirspacesFile, a.log)
	if err != nil {
		return ref, err
	}
	ref.Airspaces = set

	return ref, nil
}

// database opens the SQLite database once and shares it
func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := sqlite.Open(a.cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)
	return db, nil
}

// Close releases resources in reverse acquisition order
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
