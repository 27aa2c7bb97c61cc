package enums

import (
	"fmt"
	"strings"
)

// RoundingMode selects how fractional money amounts become whole units.
type RoundingMode string

const (
	RoundingFloor  RoundingMode = "floor"
	RoundingHalfUp RoundingMode = "half_up"
)

var validRoundingModes = []RoundingMode{
	RoundingFloor,
	RoundingHalfUp,
}

// String implements fmt.Stringer.
func (m RoundingMode) String() string {
	return string(m)
}

// IsValid reports whether the rounding mode is recognized.
func (m RoundingMode) IsValid() bool {
	for _, candidate := range validRoundingModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseRoundingMode converts a raw string into a RoundingMode. Empty input
// yields RoundingFloor.
func ParseRoundingMode(value string) (RoundingMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return RoundingFloor, nil
	}
	for _, candidate := range validRoundingModes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rounding mode %q", value)
}
