// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StandingsDependencies
	TeamDependencies
	DriverDependencies
	PartDependencies
	TrackDependencies
	StatsProvider
	Authorizer
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	teamsHandler     *TeamsHandler
	driversHandler   *DriversHandler
	partsHandler     *PartsHandler
	tracksHandler    *TracksHandler
	auth             *authGuard
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxStandingsLimit int
	requireAuth       bool
}

// WithMaxStandingsLimit caps GET /standings?limit.
func WithMaxStandingsLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxStandingsLimit = n
		}
	}
}

// WithRequireAuth enables HTTP Basic authentication on every write route.
func WithRequireAuth(enabled bool) Option {
	return func(c *serverConfig) {
		c.requireAuth = enabled
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{maxStandingsLimit: 100}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		standingsHandler: NewStandingsHandler(deps, cfg.maxStandingsLimit),
		teamsHandler:     NewTeamsHandler(deps),
		driversHandler:   NewDriversHandler(deps),
		partsHandler:     NewPartsHandler(deps),
		tracksHandler:    NewTracksHandler(deps),
		auth:             &authGuard{deps: deps, enabled: cfg.requireAuth},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
	}
	// Team writes are authorized against the {id} path value; writes to the
	// shared driver and part pools need an unbound admin.
	teamWrite := func(h http.HandlerFunc) http.HandlerFunc { return s.auth.guard(h, "id") }
	poolWrite := func(h http.HandlerFunc) http.HandlerFunc { return s.auth.guard(h, "") }

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /metrics", "metrics", s.healthHandler.HandleMetrics)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /standings", "standings", s.standingsHandler.HandleGetStandings)
	route("GET /standings/{teamID}", "standings_rank", s.standingsHandler.HandleGetRank)

	route("GET /teams", "teams", s.teamsHandler.HandleListTeams)
	route("POST /teams", "teams", poolWrite(s.teamsHandler.HandleCreateTeam))
	route("GET /teams/{id}", "team", s.teamsHandler.HandleGetTeam)
	route("PUT /teams/{id}/strategy", "team_strategy", teamWrite(s.teamsHandler.HandleSetStrategy))
	route("POST /teams/{id}/drivers", "team_drivers", teamWrite(s.teamsHandler.HandleAddDriver))
	route("DELETE /teams/{id}/drivers/{driverID}", "team_drivers", teamWrite(s.teamsHandler.HandleRemoveDriver))
	route("PUT /teams/{id}/car/{kind}", "team_car", teamWrite(s.teamsHandler.HandleInstallPart))
	route("DELETE /teams/{id}/car/{kind}", "team_car", teamWrite(s.teamsHandler.HandleRemovePart))
	route("GET /teams/{id}/race-strategy", "team_race_strategy", s.teamsHandler.HandleGetRaceStrategy)
	route("PUT /teams/{id}/race-strategy", "team_race_strategy", teamWrite(s.teamsHandler.HandleSetRaceStrategy))

	route("GET /drivers", "drivers", s.driversHandler.HandleListDrivers)
	route("POST /drivers", "drivers", poolWrite(s.driversHandler.HandleCreateDriver))
	route("GET /drivers/{id}", "driver", s.driversHandler.HandleGetDriver)
	route("PUT /drivers/{id}/skill", "driver_skill", poolWrite(s.driversHandler.HandleSetSkill))
	route("PUT /drivers/{id}", "driver", poolWrite(s.driversHandler.HandleUpdateDriver))
	route("DELETE /drivers/{id}", "driver", poolWrite(s.driversHandler.HandleDeleteDriver))

	route("GET /parts", "parts", s.partsHandler.HandleListParts)
	route("POST /parts", "parts", poolWrite(s.partsHandler.HandleCreatePart))
	route("GET /parts/{id}", "part", s.partsHandler.HandleGetPart)
	route("PUT /parts/{id}/performance", "part_performance", poolWrite(s.partsHandler.HandleSetPerformance))

	route("GET /tracks", "tracks", s.tracksHandler.HandleListTracks)
	route("GET /tracks/{id}", "track", s.tracksHandler.HandleGetTrack)
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure replies with the status and code errorStatus assigns to err.
func writeFailure(w http.ResponseWriter, op string, err error) {
	status, code := errorStatus(err)
	writeError(w, status, code, wrap(op, err))
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
