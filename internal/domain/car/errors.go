package car

import "errors"

// Sentinel errors for slot assignment and parsing.
var (
	ErrUnknownKind     = errors.New("unknown component kind")
	ErrUnknownCompound = errors.New("unknown tire compound")
	ErrKindMismatch    = errors.New("component kind does not match slot")
	ErrNilComponent    = errors.New("nil component")
	ErrNotTires        = errors.New("compound applies to tires only")
	ErrWeights         = errors.New("component weights must sum to 1.0")
)
