package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAirportStorageImportAndResolve(t *testing.T) {
	ctx := context.Background()
	store, err := NewAirportStorage(openTestDB(t), logger.NewNop())
	if err != nil {
		t.Fatalf("NewAirportStorage: %v", err)
	}

	records := []*airport.Record{
		{
			ICAOCode: "edfe",
			Name:     "Frankfurt-Egelsbach",
			Lon:      8.6417,
			Lat:      49.9608,
			Frequencies: []frequencies.RawFrequency{
				{Name: "EDFE VORFELD", Value: "123.300"},
				{Name: "EDFE INFORMATION", Value: "120.805"},
			},
		},
		{ICAOCode: "EDFE", Name: "duplicate"},
		{ICAOCode: "EDFN", Lon: 8.67, Lat: 50.83},
		{ICAOCode: " "},
	}

	n, err := store.Import(ctx, records)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}
	if count, _ := store.Count(ctx); count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	rec, err := store.Resolve(ctx, "Edfe")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.ICAOCode != "EDFE" || rec.Name != "Frankfurt-Egelsbach" || rec.Lon != 8.6417 {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Frequencies) != 2 || rec.Frequencies[0].Name != "EDFE VORFELD" || rec.Frequencies[0].Value != "123.300" {
		t.Errorf("frequencies = %v", rec.Frequencies)
	}

	rec, err = store.Resolve(ctx, "EDFN")
	if err != nil {
		t.Fatalf("Resolve(EDFN): %v", err)
	}
	if len(rec.Frequencies) != 0 {
		t.Errorf("expected no frequencies, got %v", rec.Frequencies)
	}

	if _, err := store.Resolve(ctx, "ZZZZ"); !errors.Is(err, airport.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAirportStorageReimportKeepsFirst(t *testing.T) {
	ctx := context.Background()
	store, err := NewAirportStorage(openTestDB(t), logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Import(ctx, []*airport.Record{{ICAOCode: "EDFE", Name: "first"}}); err != nil {
		t.Fatal(err)
	}
	n, err := store.Import(ctx, []*airport.Record{{ICAOCode: "EDFE", Name: "second"}})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("inserted = %d, want 0", n)
	}
	rec, _ := store.Resolve(ctx, "EDFE")
	if rec.Name != "first" {
		t.Errorf("name = %q, want first", rec.Name)
	}
}

func TestChecklistStorage(t *testing.T) {
	ctx := context.Background()
	store, err := NewChecklistStorage(openTestDB(t), logger.NewNop())
	if err != nil {
		t.Fatalf("NewChecklistStorage: %v", err)
	}

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, cs := range []string{"D-EABC", "D-EXYZ", "D-EABC"} {
		cl := checklist.New()
		cl.Append(frequencies.PhasePreStartTaxi, "call "+cs)
		err := store.Store(ctx, &ChecklistRecord{
			ID:           cs + "-" + string(rune('a'+i)),
			Callsign:     cs,
			AircraftType: "C172",
			PaxCount:     i,
			Departure:    "EDFE",
			Arrival:      "EDFN",
			DistanceNM:   47.5,
			Checklist:    cl,
			CreatedAt:    base.Add(time.Duration(i) * 500 * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	recent, err := store.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].ID != "D-EABC-c" || recent[1].ID != "D-EXYZ-b" {
		t.Errorf("order = %s, %s", recent[0].ID, recent[1].ID)
	}
	if got := recent[0].Checklist.Lines(frequencies.PhasePreStartTaxi); len(got) != 1 || got[0] != "call D-EABC" {
		t.Errorf("checklist lines = %q", got)
	}
	if !recent[0].CreatedAt.Equal(base.Add(time.Second)) {
		t.Errorf("created_at = %v", recent[0].CreatedAt)
	}

	mine, err := store.GetByCallsign(ctx, "D-EABC", 10)
	if err != nil {
		t.Fatalf("GetByCallsign: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("len = %d, want 2", len(mine))
	}

	none, err := store.GetRecent(ctx, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("GetRecent(0) = %v, %v", none, err)
	}
}
