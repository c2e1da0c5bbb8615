package domain

import (
	"fmt"
	"strings"
)

// Band is the ordinal seniority level driving policy entitlements.
type Band string

const (
	BandL1 Band = "L1"
	BandL2 Band = "L2"
	BandL3 Band = "L3"
	BandL4 Band = "L4"
	BandL5 Band = "L5"
)

// Bands returns every band in declared order, lowest first.
func Bands() []Band {
	return []Band{BandL1, BandL2, BandL3, BandL4, BandL5}
}

// Valid reports whether b belongs to the closed band enumeration.
func (b Band) Valid() bool {
	switch b {
	case BandL1, BandL2, BandL3, BandL4, BandL5:
		return true
	default:
		return false
	}
}

// ParseBand accepts band codes in any case, surrounding whitespace ignored.
func ParseBand(raw string) (Band, error) {
	b := Band(strings.ToUpper(strings.TrimSpace(raw)))
	if !b.Valid() {
		return "", fmt.Errorf("unknown band %q", raw)
	}
	return b, nil
}
