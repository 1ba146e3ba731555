package api

import (
	"context"
	"net/http"

	"github.com/okian/paddock/internal/domain/model"
)

// Authorizer checks HTTP Basic credentials against a team.
type Authorizer interface {
	Authorize(ctx context.Context, username, password, teamID string) (model.User, error)
}

type authGuard struct {
	deps    Authorizer
	enabled bool
}

// guard wraps a write handler. With auth disabled it is a no-op. teamParam
// names the path value holding the team id, or is empty for pool writes.
func (g *authGuard) guard(next http.HandlerFunc, teamParam string) http.HandlerFunc {
	if !g.enabled {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "api.authorize"
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="paddock"`)
			writeError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		var teamID string
		if teamParam != "" {
			teamID = r.PathValue(teamParam)
		}
		if _, err := g.deps.Authorize(r.Context(), username, password, teamID); err != nil {
			status, code := errorStatus(err)
			if status == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", `Basic realm="paddock"`)
			}
			writeError(w, status, code, wrap(op, err))
			return
		}
		next(w, r)
	}
}
