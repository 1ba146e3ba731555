package service

import (
	"context"
	"fmt"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/pkg/logger"
)

// Authenticate checks a username and password against the registered users.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	var out model.User
	err := s.garage.View(func(tx *repository.Tx) error {
		u, err := tx.UserByName(username)
		if err != nil || !u.CheckPassword(password) {
			return ErrUnauthorized
		}
		out = *u
		return nil
	})
	if err != nil {
		s.logger.Warn(ctx, "authentication failed", logger.String("username", username))
	}
	return out, err
}

// Authorize authenticates the caller and checks they may change teamID.
// Only admins change anything. An admin bound to a managed team changes that
// team alone; an unbound admin changes every team and the shared pools of
// drivers and parts, which callers ask for with an empty teamID.
func (s *Service) Authorize(ctx context.Context, username, password, teamID string) (model.User, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return model.User{}, err
	}
	switch {
	case !u.Role.CanManageTeam():
	case u.ManagedTeamID == "":
		return u, nil
	case u.ManagesTeam(teamID):
		return u, nil
	}
	return model.User{}, fmt.Errorf("%w: %s on %q", ErrForbidden, u.Username, teamID)
}

// UserCount returns the number of registered users.
func (s *Service) UserCount() int {
	return s.garage.Counts()[repository.EntityUsers]
}
