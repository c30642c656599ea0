package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// MetersPerNM is the length of one nautical mile
const MetersPerNM = 1852.0

// Haversine calculates the distance in meters between two lat/lon points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // Earth radius in meters
	rad := math.Pi / 180.0

	dlon := (lon2 - lon1) * rad
	dlat := (lat2 - lat1) * rad

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// MetersToNM converts meters to nautical miles
func MetersToNM(meters float64) float64 {
	return meters / MetersPerNM
}

// ParseCoordinates parses a string in the format "lat,lon" into an orb.Point (lon, lat)
func ParseCoordinates(coordStr string) (orb.Point, error) {
	parts := strings.Split(coordStr, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("invalid coordinate format, expected 'lat,lon'")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("latitude out of range: %v", lat)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude: %w", err)
	}
	if lon < -180 || lon > 180 {
		return orb.Point{}, fmt.Errorf("longitude out of range: %v", lon)
	}

	return orb.Point{lon, lat}, nil
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
