package graph

import (
	"github.com/cinegraph/cinegraph/errors"
)

// Mode selects which link set and forces drive node placement. Modes are
// mutually exclusive and switched only by explicit user action.
type Mode string

const (
	// ModeSimilarity links movies by Jaccard similarity over genre/keyword
	// feature sets. The default mode.
	ModeSimilarity Mode = "similarity"

	// ModeCoActor links movies by shared cast members.
	ModeCoActor Mode = "coactor"

	// ModeTimeline clears links and positions movies by release year.
	ModeTimeline Mode = "timeline"

	// ModeEntity shows the full entity-relationship graph.
	ModeEntity Mode = "entity"
)

// AllModes lists the modes in presentation order.
func AllModes() []Mode {
	return []Mode{ModeSimilarity, ModeCoActor, ModeTimeline, ModeEntity}
}

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSimilarity, ModeCoActor, ModeTimeline, ModeEntity:
		return true
	}
	return false
}

// ParseMode parses a mode name, as found in prefs files and CLI flags.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.NewUnknownModeError(s)
	}
	return m, nil
}
