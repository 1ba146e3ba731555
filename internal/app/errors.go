package service

import "errors"

// Sentinel kinds for service errors. Repository and domain sentinels are
// wrapped unchanged so callers can match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSlotEmpty       = errors.New("vehicle slot empty")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrForbidden       = errors.New("not allowed")
)
