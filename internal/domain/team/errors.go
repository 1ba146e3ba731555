package team

import "errors"

// Sentinel reasons for a rejected roster change.
var (
	ErrRosterFull      = errors.New("roster is full")
	ErrDuplicateDriver = errors.New("driver already on roster")
	ErrNilDriver       = errors.New("nil driver")
	ErrUnknownStrategy = errors.New("unknown ai strategy")
)
