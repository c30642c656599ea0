package airspace

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/yegors/atcopilot/internal/frequencies"
)

// Intersector finds the sectors overlapping a route
type Intersector struct {
	set    *Set
	buffer float64
}

// NewIntersector creates an intersector over set. A non-positive buffer uses DefaultBuffer.
func NewIntersector(set *Set, buffer float64) *Intersector {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Intersector{set: set, buffer: buffer}
}

// Buffer returns the radius in degrees tested around each point
func (i *Intersector) Buffer() float64 {
	return i.buffer
}

// Hits reports whether the buffer around pt overlaps the polygon: the point is inside
// or its planar distance to the boundary is within the buffer.
func (i *Intersector) Hits(p Polygon, pt orb.Point) bool {
	if len(p.Geometry) == 0 {
		return false
	}
	bound := p.bound
	if bound == (orb.Bound{}) {
		bound = p.Geometry.Bound()
	}
	if !bound.Pad(i.buffer).Contains(pt) {
		return false
	}
	if planar.PolygonContains(p.Geometry, pt) {
		return true
	}
	return planar.DistanceFrom(p.Geometry, pt) <= i.buffer
}

// Intersect walks the route in order and collects the frequencies of every sector it
// touches, tagged EnrouteCruise. Insertion order is first-seen across points, then
// sectors in dataset order, then entries in list order.
func (i *Intersector) Intersect(points []orb.Point) *frequencies.PhasedMap {
	out := frequencies.NewPhasedMap()
	if i.set == nil {
		return out
	}

	for _, pt := range points {
		for _, p := range i.set.polygons {
			if !i.Hits(p, pt) {
				continue
			}
			for _, raw := range p.Frequencies {
				if !usable(raw) {
					continue
				}
				out.SetIfAbsent(frequencies.PhasedFrequency{
					Name:  strings.TrimSpace(raw.Name),
					Value: frequencies.FormatMHz(raw.Value),
					Phase: frequencies.PhaseEnrouteCruise,
				})
			}
		}
	}
	return out
}

// Touched returns the sectors overlapping any of the points, in dataset order
func (i *Intersector) Touched(points []orb.Point) []Polygon {
	if i.set == nil {
		return nil
	}
	var out []Polygon
	for _, p := range i.set.polygons {
		for _, pt := range points {
			if i.Hits(p, pt) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
