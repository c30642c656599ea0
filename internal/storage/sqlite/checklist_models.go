package sqlite

import (
	"time"

	"github.com/yegors/atcopilot/internal/checklist"
)

// ChecklistRecord is one generated checklist kept in the history table
type ChecklistRecord struct {
	ID           string               `json:"id"`
	Callsign     string               `json:"callsign"`
	AircraftType string               `json:"aircraft_type"`
	PaxCount     int                  `json:"pax_count"`
	Departure    string               `json:"departure"`
	Arrival      string               `json:"arrival"`
	DistanceNM   float64              `json:"distance_nm"`
	Checklist    *checklist.Checklist `json:"checklist"`
	CreatedAt    time.Time            `json:"created_at"`
}
