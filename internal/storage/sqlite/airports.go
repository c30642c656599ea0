package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

// AirportStorage is an indexed airport table. It implements airport.Resolver.
type AirportStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewAirportStorage creates the airport table on db if needed
func NewAirportStorage(db *sql.DB, log *logger.Logger) (*AirportStorage, error) {
	storage := &AirportStorage{
		db:     db,
		logger: log.Named("sqlite-airports"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize airport storage", logger.Error(err))
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *AirportStorage) initDB() error {
	// icao_code is the primary key, so lookups use its implicit index
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS airports (
			icao_code TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			lon REAL NOT NULL,
			lat REAL NOT NULL,
			frequencies TEXT NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create airports table: %w", err)
	}
	return nil
}

// Import inserts records in one transaction. Codes already present are left
// untouched, so the first record for a code wins. It returns the number inserted.
func (s *AirportStorage) Import(ctx context.Context, records []*airport.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO airports (icao_code, name, lon, lat, frequencies)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(icao_code) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		code := airport.NormalizeICAO(rec.ICAOCode)
		if code == "" {
			continue
		}
		freqs := rec.Frequencies
		if freqs == nil {
			freqs = []frequencies.RawFrequency{}
		}
		freqJSON, err := json.Marshal(freqs)
		if err != nil {
			return 0, fmt.Errorf("failed to encode frequencies for %s: %w", code, err)
		}

		res, err := stmt.ExecContext(ctx, code, rec.Name, rec.Lon, rec.Lat, string(freqJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert airport %s: %w", code, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	s.logger.Info("Imported airports",
		logger.Int("records", len(records)),
		logger.Int("inserted", inserted))

	return inserted, nil
}

// Resolve implements airport.Resolver
func (s *AirportStorage) Resolve(ctx context.Context, icao string) (*airport.Record, error) {
	code := airport.NormalizeICAO(icao)

	var (
		rec      airport.Record
		freqJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT icao_code, name, lon, lat, frequencies FROM airports WHERE icao_code = ?`,
		code,
	).Scan(&rec.ICAOCode, &rec.Name, &rec.Lon, &rec.Lat, &freqJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", airport.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query airport %s: %w", code, err)
	}

	rec.Frequencies = frequencies.ParseRaw(freqJSON)
	return &rec, nil
}

// Count returns the number of stored airports
func (s *AirportStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM airports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return n, nil
}
