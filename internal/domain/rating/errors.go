package rating

import "errors"

// ErrOutOfRange marks an input that fell outside its closed range before clamping.
var ErrOutOfRange = errors.New("value out of range")
