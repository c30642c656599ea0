// Package route interpolates the planned track between two airports.
//
// The interpolation is linear in longitude and latitude independently. It is not a
// great circle; over the distances flown VFR between German airfields the difference
// does not change which airspace polygons are crossed.
package route

import (
	"fmt"

	"github.com/paulmach/orb"
)

// DefaultPoints is the number of segments used when none is configured
const DefaultPoints = 20

// Generate returns n+1 points from start to end inclusive, evenly spaced in
// coordinate space: point[i] = start + i/n * (end - start).
func Generate(start, end orb.Point, n int) []orb.Point {
	if n <= 0 {
		n = DefaultPoints
	}

	points := make([]orb.Point, n+1)
	dLon := end.Lon() - start.Lon()
	dLat := end.Lat() - start.Lat()
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		points[i] = orb.Point{start.Lon() + f*dLon, start.Lat() + f*dLat}
	}
	// Pin the endpoint exactly; f == 1 already does, this guards float drift in the sum
	points[n] = end

	return points
}

// Distance returns the great-circle length of the polyline in nautical miles.
// It is informational only and never feeds the interpolation.
func Distance(points []orb.Point) float64 {
	var meters float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		meters += Haversine(a.Lat(), a.Lon(), b.Lat(), b.Lon())
	}
	return MetersToNM(meters)
}

// ImageName returns the file name the route plot for a flight is stored under
func ImageName(dep, arr string) string {
	return fmt.Sprintf("route_%s_%s.png", upper(dep), upper(arr))
}
