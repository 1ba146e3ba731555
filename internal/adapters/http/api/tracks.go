package api

import (
	"context"
	"net/http"

	"github.com/okian/paddock/internal/domain/model"
)

// TrackDependencies defines the interface for circuit lookups.
type TrackDependencies interface {
	Tracks(ctx context.Context) []model.Track
	Track(ctx context.Context, id string) (model.Track, error)
}

// TracksHandler handles track requests.
type TracksHandler struct {
	deps TrackDependencies
}

// NewTracksHandler creates a new tracks handler.
func NewTracksHandler(deps TrackDependencies) *TracksHandler {
	return &TracksHandler{deps: deps}
}

// HandleListTracks handles GET /tracks requests.
func (h *TracksHandler) HandleListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Tracks(r.Context()))
}

// HandleGetTrack handles GET /tracks/{id} requests.
func (h *TracksHandler) HandleGetTrack(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_track"
	tr, err := h.deps.Track(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}
