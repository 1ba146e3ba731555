package model

import "errors"

// Sentinel errors for parsing and credentials.
var (
	ErrUnknownCharacteristic = errors.New("unknown track characteristic")
	ErrEmptyPassword         = errors.New("empty password")
)
