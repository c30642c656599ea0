// Package planner runs the checklist pipeline for one flight: airport resolution,
// route interpolation, airspace intersection, phase classification, role extraction,
// checklist building and transition injection.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/airspace"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/internal/events"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/internal/route"
	"github.com/yegors/atcopilot/internal/storage/sqlite"
	"github.com/yegors/atcopilot/pkg/logger"
)

// Options tunes the pipeline
type Options struct {
	RoutePoints   int
	BufferDegrees float64
	FISMarker     string
	Rules         *checklist.Table
}

// HistoryStore persists generated checklists
type HistoryStore interface {
	Store(ctx context.Context, record *sqlite.ChecklistRecord) error
	GetRecent(ctx context.Context, limit int) ([]*sqlite.ChecklistRecord, error)
}

// Service generates checklists against a fixed Reference
type Service struct {
	ref         Reference
	points      int
	classifier  *frequencies.Classifier
	intersector *airspace.Intersector
	builder     *checklist.Builder
	history     HistoryStore
	publisher   events.Publisher
	now         func() time.Time
	logger      *logger.Logger
}

// Option configures optional Service collaborators
type Option func(*Service)

// WithHistory stores every generated checklist
func WithHistory(h HistoryStore) Option {
	return func(s *Service) { s.history = h }
}

// WithPublisher publishes an event for every generated checklist
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// NewService creates a new checklist service
func NewService(ref Reference, opts Options, log *logger.Logger, options ...Option) *Service {
	points := opts.RoutePoints
	if points <= 0 {
		points = route.DefaultPoints
	}

	s := &Service{
		ref:         ref,
		points:      points,
		classifier:  frequencies.NewClassifier(opts.FISMarker),
		intersector: airspace.NewIntersector(ref.Airspaces, opts.BufferDegrees),
		builder:     checklist.NewBuilder(opts.Rules, log),
		publisher:   events.Noop{},
		now:         time.Now,
		logger:      log.Named("planner"),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Classifier returns the phase classifier in use
func (s *Service) Classifier() *frequencies.Classifier {
	return s.classifier
}

// Generate runs the whole pipeline for one flight. Both airports are resolved before
// any route work; a failure is returned as a *ResolutionError.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.PaxCount < 0 {
		return nil, fmt.Errorf("%w: pax_count must not be negative", ErrInvalidRequest)
	}

	dep, arr, err := s.resolvePair(ctx, req.DepartureICAO, req.ArrivalICAO)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithICAO(RoleDeparture, dep.ICAOCode).WithICAO(RoleArrival, arr.ICAOCode)

	depFreqs := frequencies.Extract(dep.Frequencies)
	arrFreqs := frequencies.Extract(arr.Frequencies)

	points := route.Generate(dep.Point(), arr.Point(), s.points)
	enroute := s.intersector.Intersect(points)

	merged := frequencies.Merge(s.classifier, depFreqs, enroute, arrFreqs)
	roles := frequencies.ExtractRoles(s.classifier, depFreqs, enroute, arrFreqs)

	cl := s.builder.Build(checklist.AircraftContext{
		Callsign:     req.Callsign,
		AircraftType: req.AircraftType,
		PaxCount:     req.PaxCount,
		Departure:    dep.ICAOCode,
		Arrival:      arr.ICAOCode,
		Position:     req.StartPosition,
		Roles:        roles,
	})
	checklist.InjectTransitions(cl, merged)

	result := &Result{
		ID:          uuid.NewString(),
		Checklist:   cl,
		Frequencies: merged.Entries(),
		Roles:       roles,
		Departure:   dep,
		Arrival:     arr,
		Route:       points,
		DistanceNM:  route.Distance(points),
		ImageName:   route.ImageName(dep.ICAOCode, arr.ICAOCode),
		GeneratedAt: s.now().UTC(),
	}

	log.Info("Generated checklist",
		logger.String("id", result.ID),
		logger.String("callsign", req.Callsign),
		logger.Int("frequencies", merged.Len()),
		logger.Int("enroute_frequencies", enroute.Len()),
		logger.Int("lines", cl.Len()),
		logger.Float64("distance_nm", result.DistanceNM))

	s.record(ctx, req, result)
	return result, nil
}

// record stores and announces a result. Failures are logged and never fail the request.
func (s *Service) record(ctx context.Context, req Request, res *Result) {
	if s.history != nil {
		err := s.history.Store(ctx, &sqlite.ChecklistRecord{
			ID:           res.ID,
			Callsign:     req.Callsign,
			AircraftType: req.AircraftType,
			PaxCount:     req.PaxCount,
			Departure:    res.Departure.ICAOCode,
			Arrival:      res.Arrival.ICAOCode,
			DistanceNM:   res.DistanceNM,
			Checklist:    res.Checklist,
			CreatedAt:    res.GeneratedAt,
		})
		if err != nil {
			s.logger.Warn("Failed to store checklist history",
				logger.String("id", res.ID),
				logger.Error(err))
		}
	}

	err := s.publisher.Publish(ctx, &events.ChecklistGenerated{
		Type:        events.TypeChecklistGenerated,
		ID:          res.ID,
		Callsign:    req.Callsign,
		Departure:   res.Departure.ICAOCode,
		Arrival:     res.Arrival.ICAOCode,
		DistanceNM:  res.DistanceNM,
		GeneratedAt: res.GeneratedAt,
		Checklist:   res.Checklist,
	})
	if err != nil {
		s.logger.Warn("Failed to publish checklist event",
			logger.String("id", res.ID),
			logger.Error(err))
	}
}

// Resolve looks up one airport, wrapping failures in a *ResolutionError
func (s *Service) Resolve(ctx context.Context, role, icao string) (*airport.Record, error) {
	code := airport.NormalizeICAO(icao)
	if code == "" {
		return nil, &ResolutionError{Role: role, ICAO: icao, Err: fmt.Errorf("%w: empty ICAO code", airport.ErrNotFound)}
	}
	rec, err := s.ref.Airports.Resolve(ctx, code)
	if err != nil {
		s.logger.Warn("Airport resolution failed",
			logger.String("role", role),
			logger.String("icao", code),
			logger.Error(err))
		return nil, &ResolutionError{Role: role, ICAO: code, Err: err}
	}
	return rec, nil
}

func (s *Service) resolvePair(ctx context.Context, depICAO, arrICAO string) (*airport.Record, *airport.Record, error) {
	dep, err := s.Resolve(ctx, RoleDeparture, depICAO)
	if err != nil {
		return nil, nil, err
	}
	arr, err := s.Resolve(ctx, RoleArrival, arrICAO)
	if err != nil {
		return nil, nil, err
	}
	return dep, arr, nil
}

// AirportFrequencies returns an airport's extracted frequencies classified for one
// side of the flight
func (s *Service) AirportFrequencies(ctx context.Context, icao string, side frequencies.Context) (*airport.Record, []frequencies.PhasedFrequency, error) {
	rec, err := s.Resolve(ctx, string(side), icao)
	if err != nil {
		return nil, nil, err
	}

	extracted := frequencies.Extract(rec.Frequencies)
	out := make([]frequencies.PhasedFrequency, 0, len(extracted))
	for _, f := range extracted {
		out = append(out, frequencies.PhasedFrequency{
			Name:  f.Name,
			Value: f.Value,
			Phase: s.classifier.Classify(f.Name, side),
		})
	}
	return rec, out, nil
}

// Route interpolates the route between two airports and intersects it with the
// airspace set. A non-positive n uses the configured point count.
func (s *Service) Route(ctx context.Context, depICAO, arrICAO string, n int) (*RouteResult, error) {
	dep, arr, err := s.resolvePair(ctx, depICAO, arrICAO)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.points
	}

	rr := s.routeBetween(dep.Point(), arr.Point(), n)
	rr.Departure = dep
	rr.Arrival = arr
	rr.ImageName = route.ImageName(dep.ICAOCode, arr.ICAOCode)
	return rr, nil
}

// RouteBetween is Route for free coordinates instead of airports
func (s *Service) RouteBetween(start, end orb.Point, n int) *RouteResult {
	if n <= 0 {
		n = s.points
	}
	return s.routeBetween(start, end, n)
}

func (s *Service) routeBetween(start, end orb.Point, n int) *RouteResult {
	points := route.Generate(start, end, n)
	touched := s.intersector.Touched(points)
	names := make([]string, 0, len(touched))
	for _, p := range touched {
		if name := strings.TrimSpace(p.Name); name != "" {
			names = append(names, name)
		}
	}

	return &RouteResult{
		Points:      points,
		DistanceNM:  route.Distance(points),
		Frequencies: s.intersector.Intersect(points).Entries(),
		Airspaces:   names,
	}
}

// Recent returns the newest stored checklists
func (s *Service) Recent(ctx context.Context, limit int) ([]*sqlite.ChecklistRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.GetRecent(ctx, limit)
}
