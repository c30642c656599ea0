package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/pkg/logger"
)

// timeLayout is fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChecklistStorage handles storage of generated checklists
type ChecklistStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewChecklistStorage creates the history table on db if needed
func NewChecklistStorage(db *sql.DB, log *logger.Logger) (*ChecklistStorage, error) {
	storage := &ChecklistStorage{
		db:     db,
		logger: log.Named("sqlite-history"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize checklist storage", logger.Error(err))
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *ChecklistStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS checklists (
			id TEXT PRIMARY KEY,
			callsign TEXT NOT NULL,
			aircraft_type TEXT NOT NULL,
			pax_count INTEGER NOT NULL,
			departure TEXT NOT NULL,
			arrival TEXT NOT NULL,
			distance_nm REAL NOT NULL,
			checklist TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create checklists table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_checklists_created_at ON checklists(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_checklists_callsign ON checklists(callsign)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create checklist index: %w", err)
		}
	}

	return nil
}

// Store saves a checklist record
func (s *ChecklistStorage) Store(ctx context.Context, record *ChecklistRecord) error {
	body, err := json.Marshal(record.Checklist)
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO checklists
		(id, callsign, aircraft_type, pax_count, departure, arrival, distance_nm, checklist, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Callsign,
		record.AircraftType,
		record.PaxCount,
		record.Departure,
		record.Arrival,
		record.DistanceNM,
		string(body),
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert checklist: %w", err)
	}

	return nil
}

// GetRecent returns the newest checklists first
func (s *ChecklistStorage) GetRecent(ctx context.Context, limit int) ([]*ChecklistRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, callsign, aircraft_type, pax_count, departure, arrival, distance_nm, checklist, created_at
		FROM checklists
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent checklists: %w", err)
	}
	defer rows.Close()

	return s.scanChecklistRows(rows)
}

// GetByCallsign returns the newest checklists generated for one aircraft
func (s *ChecklistStorage) GetByCallsign(ctx context.Context, callsign string, limit int) ([]*ChecklistRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, callsign, aircraft_type, pax_count, departure, arrival, distance_nm, checklist, created_at
		FROM checklists
		WHERE callsign = ?
		ORDER BY created_at DESC
		LIMIT ?`,
		callsign, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists by callsign: %w", err)
	}
	defer rows.Close()

	return s.scanChecklistRows(rows)
}

// scanChecklistRows scans database rows into ChecklistRecord structs
func (s *ChecklistStorage) scanChecklistRows(rows *sql.Rows) ([]*ChecklistRecord, error) {
	records := []*ChecklistRecord{}
	for rows.Next() {
		var (
			record    ChecklistRecord
			body      string
			createdAt string
		)
		if err := rows.Scan(
			&record.ID,
			&record.Callsign,
			&record.AircraftType,
			&record.PaxCount,
			&record.Departure,
			&record.Arrival,
			&record.DistanceNM,
			&body,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}

		record.Checklist = checklist.New()
		if err := json.Unmarshal([]byte(body), record.Checklist); err != nil {
			return nil, fmt.Errorf("failed to decode checklist %s: %w", record.ID, err)
		}

		var err error
		record.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
