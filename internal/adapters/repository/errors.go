package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidLimit  = errors.New("invalid standings limit")
	ErrInvalidRating = errors.New("invalid rating")
	ErrAlreadyExists = errors.New("already exists")
	ErrPartInUse     = errors.New("part installed in another vehicle")
	ErrDriverSigned  = errors.New("driver signed to another team")
)
