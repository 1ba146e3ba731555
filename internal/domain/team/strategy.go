package team

import (
	"fmt"
	"strings"
)

// Strategy tags a computer-controlled team. The zero value marks a team run by a user.
type Strategy string

// AI strategies.
const (
	StrategyNone         Strategy = ""
	StrategyAggressive   Strategy = "AGGRESSIVE"
	StrategyConservative Strategy = "CONSERVATIVE"
	StrategyAdaptive     Strategy = "ADAPTIVE"
)

// Valid reports whether s is a known strategy or none.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyAggressive, StrategyConservative, StrategyAdaptive:
		return true
	}
	return false
}

// ParseStrategy resolves a strategy name case-insensitively; empty parses to none.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return StrategyNone, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return st, nil
}
