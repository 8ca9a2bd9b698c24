package model

import (
	"maps"
	"strconv"
)

// PhaseLabels resolves phase numbers to display names. The zero value
// labels every phase generically. Values are immutable once built.
type PhaseLabels struct {
	names map[int]string
}

// NewPhaseLabels copies names into an immutable lookup.
func NewPhaseLabels(names map[int]string) PhaseLabels {
	return PhaseLabels{names: maps.Clone(names)}
}

// DefaultPhaseNames returns a fresh copy of the hero drop's phase names.
func DefaultPhaseNames() map[int]string {
	return map[int]string{
		0:   "Team Mints",
		1:   "Whitelist 1",
		2:   "Whitelist 2",
		3:   "Whitelist 3",
		100: "Public Mint",
	}
}

// DefaultPhaseLabels is the naming used by the hero drop.
func DefaultPhaseLabels() PhaseLabels {
	return NewPhaseLabels(DefaultPhaseNames())
}

// Label returns the configured name, or "Phase {n}" for unmapped phases.
func (p PhaseLabels) Label(phase int) string {
	if name, ok := p.names[phase]; ok && name != "" {
		return name
	}
	return "Phase " + strconv.Itoa(phase)
}

// Len returns the number of explicitly named phases.
func (p PhaseLabels) Len() int { return len(p.names) }
