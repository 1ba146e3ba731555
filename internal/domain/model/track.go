// Package model contains the informational records that surround the
// performance model: tracks and user accounts.
package model

import (
	"fmt"
	"strings"
)

// Characteristic describes what a circuit rewards.
type Characteristic string

// Track characteristics.
const (
	CharacteristicSpeed     Characteristic = "SPEED"     // engine power, e.g. Monza
	CharacteristicTechnical Characteristic = "TECHNICAL" // aero and driver skill, e.g. Monaco
	CharacteristicBalanced  Characteristic = "BALANCED"  // overall package, e.g. Silverstone
)

// ParseCharacteristic resolves a characteristic case-insensitively.
// Empty input yields Balanced.
func ParseCharacteristic(s string) (Characteristic, error) {
	c := Characteristic(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case "":
		return CharacteristicBalanced, nil
	case CharacteristicSpeed, CharacteristicTechnical, CharacteristicBalanced:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCharacteristic, s)
}

// Track is circuit metadata used for display and strategy context.
type Track struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Laps           int            `json:"laps"`
	Characteristic Characteristic `json:"characteristic"`
}

// NewTrack returns a balanced track.
func NewTrack(id, name string, laps int) Track {
	return Track{ID: id, Name: name, Laps: laps, Characteristic: CharacteristicBalanced}
}

func (t Track) String() string {
	return fmt.Sprintf("Track{id=%s name=%q laps=%d characteristic=%s}", t.ID, t.Name, t.Laps, t.Characteristic)
}
