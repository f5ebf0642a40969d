package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownValue = errors.New("value is not part of the vocabulary")

// Selection is a multi-select editor over a fixed vocabulary. Selected values
// keep the order in which they were first picked.
type Selection struct {
	candidates map[string]struct{}
	order      []string
	selected   map[string]struct{}

	// undo remembers where the previous toggle removed a value from.
	undo *removal
}

type removal struct {
	item  string
	index int
}

// NewSelection creates an empty selection over candidates. With no
// candidates every value is accepted.
func NewSelection(candidates ...string) *Selection {
	s := &Selection{selected: make(map[string]struct{})}
	if len(candidates) > 0 {
		s.candidates = make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			s.candidates[c] = struct{}{}
		}
	}
	return s
}

// Toggle removes item when selected and appends it otherwise. Re-selecting
// the value removed by the immediately preceding toggle puts it back at its
// old position, so two toggles of the same value are a no-op.
func (s *Selection) Toggle(item string) error {
	if !s.allowed(item) {
		return fmt.Errorf("%w: %q", ErrUnknownValue, item)
	}
	undo := s.undo
	s.undo = nil
	if _, ok := s.selected[item]; ok {
		delete(s.selected, item)
		for i, v := range s.order {
			if v == item {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				s.undo = &removal{item: item, index: i}
				break
			}
		}
		return nil
	}
	s.selected[item] = struct{}{}
	if undo != nil && undo.item == item && undo.index < len(s.order) {
		s.order = append(s.order[:undo.index:undo.index], append([]string{item}, s.order[undo.index:]...)...)
		return nil
	}
	s.order = append(s.order, item)
	return nil
}

// Replace discards the current selection and selects values in order,
// skipping duplicates. Values outside the vocabulary are kept: records loaded
// from the server may predate the current vocabulary.
func (s *Selection) Replace(values []string) {
	s.Reset()
	for _, v := range values {
		if _, ok := s.selected[v]; ok {
			continue
		}
		s.selected[v] = struct{}{}
		s.order = append(s.order, v)
	}
}

func (s *Selection) Reset() {
	s.order = nil
	s.undo = nil
	s.selected = make(map[string]struct{})
}

func (s *Selection) Contains(item string) bool {
	_, ok := s.selected[item]
	return ok
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Values returns a copy of the selection in first-selection order.
func (s *Selection) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) allowed(item string) bool {
	if s.candidates == nil {
		return true
	}
	_, ok := s.candidates[item]
	return ok
}
