// Package search models the group/bracket picker as an explicit state
// machine: one tagged mode, one reducer, no invalid field combinations.
package search

import (
	"strings"

	"github.com/concealdc/webgate/internal/model"
)

// Mode is which search surface the picker shows.
type Mode string

const (
	ModeGroup   Mode = "group"
	ModeBracket Mode = "bracket"
)

// State is the picker's full state. Group and Bracket are nil until a
// selection is made; groupSnapshot preserves the last group-mode
// selection across a round trip through bracket mode.
type State struct {
	Mode    Mode
	Query   string
	Group   *model.Group
	Bracket *model.Bracket

	groupSnapshot *snapshot
}

type snapshot struct {
	query   string
	group   *model.Group
	bracket *model.Bracket
}

// NewState starts in group mode with nothing selected.
func NewState() State {
	return State{Mode: ModeGroup}
}

// Event is a picker transition input.
type Event interface{ isEvent() }

// SetMode toggles between the two search surfaces.
type SetMode struct{ Mode Mode }

// QueryChanged records the current search-box text.
type QueryChanged struct{ Query string }

// GroupSelected installs a loaded group as the active pool.
type GroupSelected struct{ Group *model.Group }

// BracketPicked selects a bracket out of the active group by ID.
type BracketPicked struct{ BracketID string }

// BracketLookup resolves a bracket-mode ID search: the group the remote
// API resolved for the entered ID, searched for that bracket.
type BracketLookup struct {
	BracketID string
	Group     *model.Group
}

// Reset clears everything but keeps the current mode.
type Reset struct{}

func (SetMode) isEvent()       {}
func (QueryChanged) isEvent()  {}
func (GroupSelected) isEvent() {}
func (BracketPicked) isEvent() {}
func (BracketLookup) isEvent() {}
func (Reset) isEvent()         {}

// Reduce applies one event and returns the next state.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case SetMode:
		return reduceSetMode(s, ev.Mode)

	case QueryChanged:
		s.Query = ev.Query
		return s

	case GroupSelected:
		s.Group = ev.Group
		s.Bracket = nil
		return s

	case BracketPicked:
		s.Bracket = findBracket(s.Group, ev.BracketID)
		return s

	case BracketLookup:
		if b := findBracket(ev.Group, ev.BracketID); b != nil {
			s.Group = ev.Group
			s.Bracket = b
			return s
		}
		// An unresolvable ID clears any prior selection.
		s.Group = nil
		s.Bracket = nil
		return s

	case Reset:
		return State{Mode: s.Mode}

	default:
		return s
	}
}

func reduceSetMode(s State, mode Mode) State {
	if mode == s.Mode {
		return s
	}

	if s.Mode == ModeGroup {
		// Leaving group mode: remember what was selected there.
		s.groupSnapshot = &snapshot{query: s.Query, group: s.Group, bracket: s.Bracket}
		s.Mode = ModeBracket
		s.Query = ""
		s.Group = nil
		s.Bracket = nil
		return s
	}

	// Returning to group mode restores the snapshot.
	s.Mode = ModeGroup
	s.Query = ""
	s.Group = nil
	s.Bracket = nil
	if snap := s.groupSnapshot; snap != nil {
		s.Query = snap.query
		s.Group = snap.group
		s.Bracket = snap.bracket
	}
	s.groupSnapshot = nil
	return s
}

// findBracket matches by exact ID, case-insensitively, within the
// group's bracket list.
func findBracket(group *model.Group, id string) *model.Bracket {
	if group == nil {
		return nil
	}
	for i := range group.Brackets {
		if strings.EqualFold(group.Brackets[i].ID, id) {
			return &group.Brackets[i]
		}
	}
	return nil
}
