package airport

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

// Index is an in-memory airport table built from a GeoJSON FeatureCollection.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	byICAO  map[string]*Record
	records []*Record
}

// LoadIndex reads an airport GeoJSON file into an Index
func LoadIndex(path string, log *logger.Logger) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read airport dataset: %w", err)
	}

	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse airport dataset %s: %w", path, err)
	}

	log.Named("airport-index").Info("Loaded airport dataset",
		logger.String("path", path),
		logger.Int("airports", len(idx.records)))

	return idx, nil
}

// ParseIndex builds an Index from GeoJSON bytes. Features without an ICAO code or
// without a point geometry are skipped; the first feature for a code wins.
func ParseIndex(data []byte) (*Index, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	idx := &Index{byICAO: make(map[string]*Record, len(fc.Features))}
	for _, f := range fc.Features {
		rec, ok := recordFromFeature(f)
		if !ok {
			continue
		}
		if _, dup := idx.byICAO[rec.ICAOCode]; dup {
			continue
		}
		idx.byICAO[rec.ICAOCode] = rec
		idx.records = append(idx.records, rec)
	}

	return idx, nil
}

// NewIndex builds an Index from already constructed records
func NewIndex(records []*Record) *Index {
	idx := &Index{byICAO: make(map[string]*Record, len(records))}
	for _, rec := range records {
		code := NormalizeICAO(rec.ICAOCode)
		if code == "" {
			continue
		}
		if _, dup := idx.byICAO[code]; dup {
			continue
		}
		idx.byICAO[code] = rec
		idx.records = append(idx.records, rec)
	}
	return idx
}

func recordFromFeature(f *geojson.Feature) (*Record, bool) {
	if f == nil || f.Geometry == nil {
		return nil, false
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, false
	}

	code := NormalizeICAO(f.Properties.MustString("icaoCode", ""))
	if code == "" {
		return nil, false
	}

	return &Record{
		ICAOCode:    code,
		Name:        f.Properties.MustString("name", ""),
		Lon:         pt.Lon(),
		Lat:         pt.Lat(),
		Frequencies: frequencies.ParseRaw(f.Properties["frequencies"]),
	}, true
}

// Resolve implements Resolver
func (i *Index) Resolve(_ context.Context, icao string) (*Record, error) {
	rec, ok := i.byICAO[NormalizeICAO(icao)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, NormalizeICAO(icao))
	}
	return rec, nil
}

// Records returns every airport in dataset order
func (i *Index) Records() []*Record {
	out := make([]*Record, len(i.records))
	copy(out, i.records)
	return out
}

// Len returns the number of indexed airports
func (i *Index) Len() int {
	return len(i.records)
}
