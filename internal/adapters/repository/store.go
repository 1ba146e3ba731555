// Package repository holds the in-memory state of the garage: the entity
// registry and the team standings.
package repository

import "context"

// Entry represents a standings row.
type Entry struct {
	Rank     int
	TeamID   string
	TeamName string
	Rating   float64
}

// Store provides read/write access to the standings.
type Store interface {
	// Set records the current rating of a team, replacing any previous one.
	Set(ctx context.Context, teamID, teamName string, rating float64) error

	// Rank returns the current rank and rating for a team.
	// Returns ErrNotFound if the team is unknown.
	Rank(ctx context.Context, teamID string) (Entry, error)

	// TopN returns the top-N entries ordered by rating desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of teams tracked in the standings.
	Count(ctx context.Context) int
}
