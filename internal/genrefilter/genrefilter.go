// Package genrefilter implements the tri-state genre chip selection used on
// the discover page. Each genre chip cycles None -> Included -> Excluded ->
// None, one state per click. Included genres are ANDed into the catalog
// query; excluded genres are subtracted from it.
package genrefilter

import "strings"

type State int

const (
	None State = iota
	Included
	Excluded
)

// Selection tracks the chip state for every genre id. The zero value is a
// valid empty selection.
type Selection struct {
	included []string
	excluded []string
}

// NewSelection rebuilds a selection from comma-joined query parameters, the
// form the discover endpoint receives them in.
func NewSelection(withGenres, withoutGenres string) *Selection {
	return &Selection{
		included: splitIDs(withGenres),
		excluded: splitIDs(withoutGenres),
	}
}

// State reports the chip state for a genre id.
func (s *Selection) State(genreID string) State {
	if containsID(s.included, genreID) {
		return Included
	}
	if containsID(s.excluded, genreID) {
		return Excluded
	}
	return None
}

// Toggle advances the chip for genreID exactly one state and returns the new
// state. Three toggles always return a chip to where it started; chips for
// other genre ids are untouched.
func (s *Selection) Toggle(genreID string) State {
	switch s.State(genreID) {
	case None:
		s.included = append(s.included, genreID)
		return Included
	case Included:
		s.included = removeID(s.included, genreID)
		s.excluded = append(s.excluded, genreID)
		return Excluded
	default: // Excluded
		s.excluded = removeID(s.excluded, genreID)
		return None
	}
}

// Params renders the selection as the with_genres / without_genres pair the
// discover query takes. Both are comma-joined; empty means no constraint.
func (s *Selection) Params() (withGenres, withoutGenres string) {
	return strings.Join(s.included, ","), strings.Join(s.excluded, ",")
}

func splitIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
