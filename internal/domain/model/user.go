package model

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role is a user's capability level.
type Role string

// Roles.
const (
	RoleViewer Role = "VIEWER"
	RoleAdmin  Role = "ADMIN"
)

var passwordCost = bcrypt.DefaultCost

// ParseRole maps "ADMIN" (any case) to RoleAdmin and everything else to RoleViewer.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleViewer
}

// IsAdmin reports whether r is the admin role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanManageTeam reports whether r may change rosters and cars.
func (r Role) CanManageTeam() bool { return r == RoleAdmin }

// CanRunRaces reports whether r may start a race.
func (r Role) CanRunRaces() bool { return r == RoleAdmin }

// User is an account. The credential secret is kept only as a bcrypt hash.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	PasswordHash  []byte `json:"-"`
	Role          Role   `json:"role"`
	ManagedTeamID string `json:"managed_team_id,omitempty"`
}

// NewUser builds a user and hashes password.
func NewUser(id, username, password string, role Role, managedTeamID string) (*User, error) {
	u := &User{ID: id, Username: username, Role: role, ManagedTeamID: managedTeamID}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored hash.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if len(u.PasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// ManagesTeam reports whether the user may manage teamID.
func (u *User) ManagesTeam(teamID string) bool {
	return u.Role.CanManageTeam() && u.ManagedTeamID != "" && u.ManagedTeamID == teamID
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%s username=%q role=%s}", u.ID, u.Username, u.Role)
}
