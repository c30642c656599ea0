package airspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

const testAirspaces = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]},
      "properties": {
        "name": "FIS WEST",
        "frequencies": [
          {"name": "LANGEN INFORMATION", "value": "128.950"},
          {"name": "UNKNOWN", "value": "120.000"},
          {"name": "  ", "value": "121.000"},
          {"name": "NO VALUE", "value": ""}
        ]
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[2,0],[4,0],[4,2],[2,2],[2,0]]]},
      "properties": {
        "name": "FIS EAST",
        "frequencies": "[{\"name\": \"LANGEN INFORMATION\", \"value\": \"119.150\"}, {\"name\": \"LANGEN INFORMATION\", \"value\": \"128.950\"}]"
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,2],[0,2],[0,0]]]},
      "properties": {"name": "BROKEN", "frequencies": "not-json"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[0,0],[4,2]]},
      "properties": {"name": "LINE", "frequencies": [{"name": "LINE FIS", "value": "1"}]}
    }
  ]
}`

func loadTestSet(t *testing.T) *Set {
	t.Helper()
	set, err := Parse([]byte(testAirspaces))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return set
}

func TestParseKeepsOnlyPolygons(t *testing.T) {
	set := loadTestSet(t)
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}
	for _, p := range set.Polygons() {
		if p.Name == "LINE" {
			t.Error("line string feature should not be loaded")
		}
	}
}

func TestMalformedFrequenciesAreEmpty(t *testing.T) {
	set := loadTestSet(t)
	for _, p := range set.Polygons() {
		if p.Name == "BROKEN" && len(p.Frequencies) != 0 {
			t.Errorf("BROKEN frequencies = %v, want empty", p.Frequencies)
		}
	}

	// A route only through the broken polygon contributes nothing
	only := NewSet(NewPolygon("BROKEN", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		frequencies.ParseRaw("not-json")))
	got := NewIntersector(only, 0).Intersect([]orb.Point{{0.5, 0.5}})
	if got.Len() != 0 {
		t.Errorf("expected no frequencies, got %v", got.Entries())
	}
}

func TestIntersect(t *testing.T) {
	set := loadTestSet(t)
	ix := NewIntersector(set, DefaultBuffer)

	route := []orb.Point{{1, 1}, {3, 1}}
	got := ix.Intersect(route).Entries()

	want := []frequencies.PhasedFrequency{
		{Name: "LANGEN INFORMATION", Value: "128.950 MHz", Phase: frequencies.PhaseEnrouteCruise},
		{Name: "LANGEN INFORMATION", Value: "119.150 MHz", Phase: frequencies.PhaseEnrouteCruise},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIntersectOrderFollowsRoute(t *testing.T) {
	set := loadTestSet(t)
	ix := NewIntersector(set, DefaultBuffer)

	got := ix.Intersect([]orb.Point{{3, 1}, {1, 1}}).Entries()
	if len(got) != 2 || got[0].Value != "119.150 MHz" || got[1].Value != "128.950 MHz" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestHitsBuffer(t *testing.T) {
	poly := NewPolygon("SQ", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}, nil)
	ix := NewIntersector(NewSet(poly), 0.01)

	tests := []struct {
		name string
		pt   orb.Point
		want bool
	}{
		{"inside", orb.Point{0.5, 0.5}, true},
		{"on edge", orb.Point{1, 0.5}, true},
		{"within buffer", orb.Point{1.005, 0.5}, true},
		{"outside buffer", orb.Point{1.02, 0.5}, false},
		{"far away", orb.Point{10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.Hits(poly, tt.pt); got != tt.want {
				t.Errorf("Hits(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestTouched(t *testing.T) {
	set := loadTestSet(t)
	ix := NewIntersector(set, DefaultBuffer)
	touched := ix.Touched([]orb.Point{{1, 1}})
	if len(touched) != 2 || touched[0].Name != "FIS WEST" || touched[1].Name != "BROKEN" {
		t.Errorf("touched = %v", touched)
	}
}

func TestNilSet(t *testing.T) {
	ix := NewIntersector(nil, 0)
	if ix.Buffer() != DefaultBuffer {
		t.Errorf("Buffer() = %v", ix.Buffer())
	}
	if got := ix.Intersect([]orb.Point{{0, 0}}); got.Len() != 0 {
		t.Errorf("expected empty map, got %d", got.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asp.geojson")
	if err := os.WriteFile(path, []byte(testAirspaces), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path, logger.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 3 {
		t.Errorf("Len() = %d", set.Len())
	}
	if _, err := Parse([]byte("{")); err == nil {
		t.Error("expected error for invalid GeoJSON")
	}
}
