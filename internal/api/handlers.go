package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paulmach/orb"
	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/config"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/internal/planner"
	"github.com/yegors/atcopilot/internal/route"
	"github.com/yegors/atcopilot/internal/storage/sqlite"
	"github.com/yegors/atcopilot/pkg/logger"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	maxRoutePoints      = 500
	maxBodyBytes        = 64 << 10
)

// Planner is the checklist pipeline the handlers expose
type Planner interface {
	Generate(ctx context.Context, req planner.Request) (*planner.Result, error)
	Resolve(ctx context.Context, role, icao string) (*airport.Record, error)
	AirportFrequencies(ctx context.Context, icao string, side frequencies.Context) (*airport.Record, []frequencies.PhasedFrequency, error)
	Route(ctx context.Context, depICAO, arrICAO string, n int) (*planner.RouteResult, error)
	RouteBetween(start, end orb.Point, n int) *planner.RouteResult
	Recent(ctx context.Context, limit int) ([]*sqlite.ChecklistRecord, error)
}

// Handler contains the HTTP handlers
type Handler struct {
	planner   Planner
	config    *config.Config
	startedAt time.Time
	logger    *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(p Planner, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		planner:   p,
		config:    config,
		startedAt: time.Now(),
		logger:    logger.Named("api-handler"),
	}
}

// GenerateChecklist builds a checklist for the posted flight.
// ?format=markdown returns the checklist as Markdown instead of JSON.
func (h *Handler) GenerateChecklist(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	res, err := h.planner.Generate(r.Context(), req)
	if err != nil {
		h.writePipelineError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(res.Checklist.Markdown()))
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GetRecentChecklists returns the newest generated checklists
func (h *Handler) GetRecentChecklists(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultHistoryLimit)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxHistoryLimit))
		return
	}

	records, err := h.planner.Recent(r.Context(), limit)
	if errors.Is(err, planner.ErrHistoryDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("Failed to load checklist history", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load checklist history")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GetAirport returns one airport record
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	rec, err := h.planner.Resolve(r.Context(), "requested", chi.URLParam(r, "icao"))
	if err != nil {
		h.writePipelineError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// airportFrequenciesResponse is the body of GET /airports/{icao}/frequencies
type airportFrequenciesResponse struct {
	ICAOCode    string                        `json:"icao_code"`
	Context     frequencies.Context           `json:"context"`
	Frequencies []frequencies.PhasedFrequency `json:"frequencies"`
}

// GetAirportFrequencies returns an airport's frequencies classified for one side
func (h *Handler) GetAirportFrequencies(w http.ResponseWriter, r *http.Request) {
	side := frequencies.Context(r.URL.Query().Get("context"))
	switch side {
	case "":
		side = frequencies.ContextDeparture
	case frequencies.ContextDeparture, frequencies.ContextArrival:
	default:
		writeError(w, http.StatusBadRequest, "context must be departure or arrival")
		return
	}

	rec, freqs, err := h.planner.AirportFrequencies(r.Context(), chi.URLParam(r, "icao"), side)
	if err != nil {
		h.writePipelineError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, airportFrequenciesResponse{
		ICAOCode:    rec.ICAOCode,
		Context:     side,
		Frequencies: freqs,
	})
}

// GetRoute returns the route between two airports, or two "lat,lon" points, and its
// en-route frequencies
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	points, err := intParam(r, "points", 0)
	if err != nil || points < 0 || points > maxRoutePoints {
		writeError(w, http.StatusBadRequest, "points must be a number between 0 and "+strconv.Itoa(maxRoutePoints))
		return
	}

	// from/to take raw "lat,lon" pairs and skip airport resolution
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		start, err := route.ParseCoordinates(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from: "+err.Error())
			return
		}
		end, err := route.ParseCoordinates(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, h.planner.RouteBetween(start, end, points))
		return
	}

	dep, arr := q.Get("dep"), q.Get("arr")
	if dep == "" || arr == "" {
		writeError(w, http.StatusBadRequest, "dep and arr are required")
		return
	}

	res, err := h.planner.Route(r.Context(), dep, arr, points)
	if err != nil {
		h.writePipelineError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetHealth reports service status
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"time":           time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"airport_source": h.config.Data.AirportSource,
	})
}

// writePipelineError maps pipeline errors to HTTP statuses. notFound is the status
// used when an airport does not exist.
func (h *Handler) writePipelineError(w http.ResponseWriter, r *http.Request, err error, notFound int) {
	var rerr *planner.ResolutionError
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &rerr) && errors.Is(err, airport.ErrNotFound):
		writeJSON(w, notFound, map[string]string{
			"error": err.Error(),
			"role":  rerr.Role,
			"icao":  rerr.ICAO,
		})
	case errors.As(err, &rerr):
		h.logger.Error("Airport lookup failed",
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Pipeline failed",
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
