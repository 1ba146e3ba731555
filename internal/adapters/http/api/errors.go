package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/paddock/internal/adapters/repository"
	service "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/team"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("limit exceeded")
)

// wrap prefixes err with the operation that failed.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// errorStatus maps an error to an HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, team.ErrRosterFull):
		return http.StatusConflict, "roster_full"
	case errors.Is(err, team.ErrDuplicateDriver):
		return http.StatusConflict, "duplicate_driver"
	case errors.Is(err, repository.ErrDriverSigned):
		return http.StatusConflict, "driver_signed"
	case errors.Is(err, repository.ErrPartInUse):
		return http.StatusConflict, "part_in_use"
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrSlotEmpty):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest, "limit_exceeded"
	case errors.Is(err, car.ErrKindMismatch):
		return http.StatusBadRequest, "kind_mismatch"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, car.ErrUnknownKind),
		errors.Is(err, car.ErrUnknownCompound),
		errors.Is(err, car.ErrNotTires),
		errors.Is(err, team.ErrUnknownStrategy):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "internal_error"
}
