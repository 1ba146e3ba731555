package api

import (
	"context"
	"net/http"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/types"
)

// PartDependencies defines the interface for component operations.
type PartDependencies interface {
	Parts(ctx context.Context) []types.Component
	Part(ctx context.Context, id string) (types.Component, error)
	CreatePart(ctx context.Context, kind car.Kind, name string, performance int, compound string) (types.Component, error)
	SetPartPerformance(ctx context.Context, id string, performance int) (types.Component, error)
}

// PartsHandler handles component requests.
type PartsHandler struct {
	deps PartDependencies
}

// NewPartsHandler creates a new parts handler.
func NewPartsHandler(deps PartDependencies) *PartsHandler {
	return &PartsHandler{deps: deps}
}

type createPartRequest struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Performance int    `json:"performance"`
	Compound    string `json:"compound"`
}

type performanceRequest struct {
	Performance int `json:"performance"`
}

// HandleListParts handles GET /parts requests.
func (h *PartsHandler) HandleListParts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Parts(r.Context()))
}

// HandleGetPart handles GET /parts/{id} requests.
func (h *PartsHandler) HandleGetPart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_part"
	c, err := h.deps.Part(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleCreatePart handles POST /parts requests.
func (h *PartsHandler) HandleCreatePart(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_part"
	var req createPartRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	kind, err := car.ParseKind(req.Kind)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	c, err := h.deps.CreatePart(r.Context(), kind, req.Name, req.Performance, req.Compound)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HandleSetPerformance handles PUT /parts/{id}/performance requests.
func (h *PartsHandler) HandleSetPerformance(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_performance"
	var req performanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	c, err := h.deps.SetPartPerformance(r.Context(), r.PathValue("id"), req.Performance)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
