package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/types"
)

// TeamDependencies defines the interface for roster, vehicle and strategy operations.
type TeamDependencies interface {
	Teams(ctx context.Context) []types.Team
	Team(ctx context.Context, id string) (types.Team, error)
	CreateTeam(ctx context.Context, id, name, strategy string) (types.Team, error)
	SetTeamStrategy(ctx context.Context, teamID, strategy string) (types.Team, error)
	AddDriverToTeam(ctx context.Context, teamID, driverID string) (types.Team, error)
	RemoveDriverFromTeam(ctx context.Context, teamID, driverID string) (types.Team, error)
	InstallPart(ctx context.Context, teamID string, kind car.Kind, partID string) (types.Team, error)
	RemovePart(ctx context.Context, teamID string, kind car.Kind) (types.Team, error)
	RaceStrategy(ctx context.Context, teamID string) (types.RaceStrategy, error)
	SetRaceStrategy(ctx context.Context, teamID string, pitStops int, compound string, fuelLoad float64) (types.RaceStrategy, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

type createTeamRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

type strategyRequest struct {
	Strategy string `json:"strategy"`
}

type addDriverRequest struct {
	DriverID string `json:"driver_id"`
}

type installPartRequest struct {
	PartID string `json:"part_id"`
}

type raceStrategyRequest struct {
	PitStops         int     `json:"pit_stops"`
	StartingCompound string  `json:"starting_compound"`
	FuelLoad         float64 `json:"fuel_load"`
}

// HandleListTeams handles GET /teams requests.
func (h *TeamsHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Teams(r.Context()))
}

// HandleGetTeam handles GET /teams/{id} requests.
func (h *TeamsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	t, err := h.deps.Team(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleCreateTeam handles POST /teams requests.
func (h *TeamsHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_team"
	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	t, err := h.deps.CreateTeam(r.Context(), strings.TrimSpace(req.ID), strings.TrimSpace(req.Name), req.Strategy)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// HandleSetStrategy handles PUT /teams/{id}/strategy requests.
func (h *TeamsHandler) HandleSetStrategy(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_team_strategy"
	var req strategyRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	t, err := h.deps.SetTeamStrategy(r.Context(), r.PathValue("id"), req.Strategy)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleAddDriver handles POST /teams/{id}/drivers requests. A full roster
// answers 409 with code roster_full.
func (h *TeamsHandler) HandleAddDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_driver"
	var req addDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if strings.TrimSpace(req.DriverID) == "" {
		writeFailure(w, op, fmt.Errorf("%w: missing driver_id", ErrBadRequest))
		return
	}
	t, err := h.deps.AddDriverToTeam(r.Context(), r.PathValue("id"), req.DriverID)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleRemoveDriver handles DELETE /teams/{id}/drivers/{driverID} requests.
func (h *TeamsHandler) HandleRemoveDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_driver"
	t, err := h.deps.RemoveDriverFromTeam(r.Context(), r.PathValue("id"), r.PathValue("driverID"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleInstallPart handles PUT /teams/{id}/car/{kind} requests.
func (h *TeamsHandler) HandleInstallPart(w http.ResponseWriter, r *http.Request) {
	const op = "api.install_part"
	kind, err := car.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	var req installPartRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if strings.TrimSpace(req.PartID) == "" {
		writeFailure(w, op, fmt.Errorf("%w: missing part_id", ErrBadRequest))
		return
	}
	t, err := h.deps.InstallPart(r.Context(), r.PathValue("id"), kind, req.PartID)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleRemovePart handles DELETE /teams/{id}/car/{kind} requests.
func (h *TeamsHandler) HandleRemovePart(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_part"
	kind, err := car.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	t, err := h.deps.RemovePart(r.Context(), r.PathValue("id"), kind)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleGetRaceStrategy handles GET /teams/{id}/race-strategy requests.
func (h *TeamsHandler) HandleGetRaceStrategy(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_race_strategy"
	plan, err := h.deps.RaceStrategy(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// HandleSetRaceStrategy handles PUT /teams/{id}/race-strategy requests.
func (h *TeamsHandler) HandleSetRaceStrategy(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_race_strategy"
	var req raceStrategyRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	plan, err := h.deps.SetRaceStrategy(r.Context(), r.PathValue("id"), req.PitStops, req.StartingCompound, req.FuelLoad)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
