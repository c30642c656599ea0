// Package airspace loads airspace polygons and finds the en-route frequencies of the
// sectors a route passes through.
package airspace

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

// DefaultBuffer is the radius, in degrees, of the region tested around each route point
const DefaultBuffer = 0.01

// unknownName is the placeholder station name used by the dataset for missing data
const unknownName = "UNKNOWN"

// Polygon is one airspace sector with its raw frequency list
type Polygon struct {
	Name        string
	Geometry    orb.Polygon
	Frequencies []frequencies.RawFrequency

	bound orb.Bound
}

// Set is the immutable collection of airspace polygons loaded at startup
type Set struct {
	polygons []Polygon
}

// Load reads an airspace GeoJSON file into a Set
func Load(path string, log *logger.Logger) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read airspace dataset: %w", err)
	}

	set, skipped, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse airspace dataset %s: %w", path, err)
	}

	log.Named("airspace").Info("Loaded airspace dataset",
		logger.String("path", path),
		logger.Int("polygons", set.Len()),
		logger.Int("skipped_non_polygon", skipped))

	return set, nil
}

// Parse builds a Set from GeoJSON bytes. Only Polygon features are kept.
func Parse(data []byte) (*Set, error) {
	set, _, err := parse(data)
	return set, err
}

func parse(data []byte) (*Set, int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, err
	}

	set := &Set{}
	skipped := 0
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			skipped++
			continue
		}
		set.polygons = append(set.polygons, NewPolygon(
			f.Properties.MustString("name", ""),
			poly,
			frequencies.ParseRaw(f.Properties["frequencies"]),
		))
	}
	return set, skipped, nil
}

// NewPolygon builds a sector from already decoded parts
func NewPolygon(name string, geom orb.Polygon, freqs []frequencies.RawFrequency) Polygon {
	return Polygon{
		Name:        name,
		Geometry:    geom,
		Frequencies: freqs,
		bound:       geom.Bound(),
	}
}

// NewSet builds a Set from polygons
func NewSet(polygons ...Polygon) *Set {
	out := make([]Polygon, len(polygons))
	for i, p := range polygons {
		p.bound = p.Geometry.Bound()
		out[i] = p
	}
	return &Set{polygons: out}
}

// Len returns the number of polygons in the set
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.polygons)
}

// Polygons returns the sectors in dataset order
func (s *Set) Polygons() []Polygon {
	if s == nil {
		return nil
	}
	out := make([]Polygon, len(s.polygons))
	copy(out, s.polygons)
	return out
}

// usable reports whether a raw entry carries a real station
func usable(f frequencies.RawFrequency) bool {
	name := strings.TrimSpace(f.Name)
	if name == "" || strings.TrimSpace(f.Value) == "" {
		return false
	}
	return strings.ToUpper(name) != unknownName
}
