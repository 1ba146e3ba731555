package api

import (
	"context"
	"net/http"

	"github.com/okian/paddock/internal/domain/types"
)

// DriverDependencies defines the interface for driver operations.
type DriverDependencies interface {
	Drivers(ctx context.Context) []types.Driver
	Driver(ctx context.Context, id string) (types.Driver, error)
	CreateDriver(ctx context.Context, name string, skill int) (types.SkillUpdate, error)
	SetDriverSkill(ctx context.Context, id string, skill int) (types.SkillUpdate, error)
	UpdateDriver(ctx context.Context, id string, name *string, skill *int) (types.SkillUpdate, error)
	DeleteDriver(ctx context.Context, id string) error
}

// DriversHandler handles driver requests.
type DriversHandler struct {
	deps DriverDependencies
}

// NewDriversHandler creates a new drivers handler.
func NewDriversHandler(deps DriverDependencies) *DriversHandler {
	return &DriversHandler{deps: deps}
}

type createDriverRequest struct {
	Name  string `json:"name"`
	Skill int    `json:"skill"`
}

type skillRequest struct {
	Skill int `json:"skill"`
}

type updateDriverRequest struct {
	Name  *string `json:"name"`
	Skill *int    `json:"skill"`
}

// HandleListDrivers handles GET /drivers requests.
func (h *DriversHandler) HandleListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Drivers(r.Context()))
}

// HandleGetDriver handles GET /drivers/{id} requests.
func (h *DriversHandler) HandleGetDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_driver"
	d, err := h.deps.Driver(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleCreateDriver handles POST /drivers requests. Out-of-range skills are
// stored clamped and flagged in the reply.
func (h *DriversHandler) HandleCreateDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_driver"
	var req createDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	res, err := h.deps.CreateDriver(r.Context(), req.Name, req.Skill)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// HandleSetSkill handles PUT /drivers/{id}/skill requests.
func (h *DriversHandler) HandleSetSkill(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_skill"
	var req skillRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	res, err := h.deps.SetDriverSkill(r.Context(), r.PathValue("id"), req.Skill)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleUpdateDriver handles PUT /drivers/{id} requests. Omitted fields are
// left unchanged.
func (h *DriversHandler) HandleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_driver"
	var req updateDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	res, err := h.deps.UpdateDriver(r.Context(), r.PathValue("id"), req.Name, req.Skill)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDeleteDriver handles DELETE /drivers/{id} requests.
func (h *DriversHandler) HandleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_driver"
	if err := h.deps.DeleteDriver(r.Context(), r.PathValue("id")); err != nil {
		writeFailure(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
