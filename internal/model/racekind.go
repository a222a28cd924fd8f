package model

import (
	"fmt"
	"strings"
)

// RaceKind identifies a racing discipline. Its string value is the literal
// prefix of every identifier owned by the discipline.
type RaceKind string

const (
	RaceKindJRA      RaceKind = "jra"      // central horse racing
	RaceKindNAR      RaceKind = "nar"      // local horse racing
	RaceKindOverseas RaceKind = "overseas" // overseas horse racing
	RaceKindKeirin   RaceKind = "keirin"
	RaceKindBoatrace RaceKind = "boatrace"
	RaceKindAutorace RaceKind = "autorace"
)

var allRaceKinds = []RaceKind{
	RaceKindJRA,
	RaceKindNAR,
	RaceKindOverseas,
	RaceKindKeirin,
	RaceKindBoatrace,
	RaceKindAutorace,
}

// AllRaceKinds returns every known race kind in a stable order.
func AllRaceKinds() []RaceKind {
	kinds := make([]RaceKind, len(allRaceKinds))
	copy(kinds, allRaceKinds)
	return kinds
}

// ParseRaceKind accepts exactly one of the known keywords. Matching is
// case-sensitive.
func ParseRaceKind(s string) (RaceKind, error) {
	k := RaceKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownRaceKind, s, kindList())
	}
	return k, nil
}

// Valid reports whether k is one of the known race kinds.
func (k RaceKind) Valid() bool {
	for _, known := range allRaceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Prefix returns the literal identifier prefix for k.
func (k RaceKind) Prefix() string {
	return string(k)
}

// HasPositionNumbers reports whether participant identifiers exist for k.
func (k RaceKind) HasPositionNumbers() bool {
	_, ok := positionBounds[k]
	return ok
}

func (k RaceKind) String() string {
	return string(k)
}

// kindForPrefix returns the kind whose prefix starts s. The longest prefix
// wins so no kind can shadow another.
func kindForPrefix(s string) (RaceKind, bool) {
	var best RaceKind
	for _, k := range allRaceKinds {
		if strings.HasPrefix(s, k.Prefix()) && len(k) > len(best) {
			best = k
		}
	}
	return best, best != ""
}

func kindList() string {
	names := make([]string, len(allRaceKinds))
	for i, k := range allRaceKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
