package route

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestGenerate(t *testing.T) {
	start := orb.Point{8.64, 50.0} // EDFE
	end := orb.Point{8.47, 50.90}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"default", 0, DefaultPoints + 1},
		{"negative uses default", -3, DefaultPoints + 1},
		{"one segment", 1, 2},
		{"ten", 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Generate(start, end, tt.n)
			if len(pts) != tt.want {
				t.Fatalf("len = %d, want %d", len(pts), tt.want)
			}
			if pts[0] != start {
				t.Errorf("first point = %v, want %v", pts[0], start)
			}
			if pts[len(pts)-1] != end {
				t.Errorf("last point = %v, want %v", pts[len(pts)-1], end)
			}

			// Collinear and evenly spaced in coordinate space
			n := len(pts) - 1
			for i, p := range pts {
				f := float64(i) / float64(n)
				wantLon := start.Lon() + f*(end.Lon()-start.Lon())
				wantLat := start.Lat() + f*(end.Lat()-start.Lat())
				if math.Abs(p.Lon()-wantLon) > 1e-12 || math.Abs(p.Lat()-wantLat) > 1e-12 {
					t.Errorf("point %d = %v, want (%v, %v)", i, p, wantLon, wantLat)
				}
			}
		})
	}
}

func TestGenerateSamePoint(t *testing.T) {
	p := orb.Point{8.0, 50.0}
	for _, q := range Generate(p, p, 5) {
		if q != p {
			t.Fatalf("expected all points equal to %v, got %v", p, q)
		}
	}
}

func TestDistance(t *testing.T) {
	// One degree of latitude is ~60 NM
	pts := Generate(orb.Point{8.0, 50.0}, orb.Point{8.0, 51.0}, 20)
	d := Distance(pts)
	if math.Abs(d-60.0) > 0.5 {
		t.Errorf("Distance() = %.2f NM, want ~60", d)
	}
	if Distance(pts[:1]) != 0 {
		t.Error("single point should have zero length")
	}
}

func TestParseCoordinates(t *testing.T) {
	p, err := ParseCoordinates(" 50.0 , 8.64 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat() != 50.0 || p.Lon() != 8.64 {
		t.Errorf("got %v", p)
	}

	for _, bad := range []string{"", "50", "a,b", "91,0", "0,181"} {
		if _, err := ParseCoordinates(bad); err == nil {
			t.Errorf("ParseCoordinates(%q) should fail", bad)
		}
	}
}

func TestImageName(t *testing.T) {
	if got := ImageName("edfe", " edfn"); got != "route_EDFE_EDFN.png" {
		t.Errorf("ImageName() = %q", got)
	}
}
