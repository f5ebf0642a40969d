package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelectionToggleTwiceRestoresOriginal(t *testing.T) {
	for _, c := range AllCategories {
		s := NewCategorySelection()
		for _, picked := range []string{"Strength", "Balance", "Power"} {
			if err := s.Toggle(picked); err != nil {
				t.Fatalf("toggle %q: %v", picked, err)
			}
		}
		before := s.Values()

		if err := s.Toggle(c); err != nil {
			t.Fatalf("toggle %q: %v", c, err)
		}
		if err := s.Toggle(c); err != nil {
			t.Fatalf("toggle %q: %v", c, err)
		}
		if got := s.Values(); !reflect.DeepEqual(got, before) {
			t.Fatalf("after toggling %q twice: got %v, want %v", c, got, before)
		}
	}
}

func TestSelectionToggleUnselectedTwice(t *testing.T) {
	s := NewTagSelection()
	_ = s.Toggle("Abs")
	_ = s.Toggle("Arms")
	want := s.Values()

	_ = s.Toggle("Hips")
	_ = s.Toggle("Hips")

	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSelectionInsertionOrder(t *testing.T) {
	s := NewTagSelection()
	for _, tag := range []string{"Turns", "Abs", "Kicks"} {
		_ = s.Toggle(tag)
	}
	_ = s.Toggle("Abs")
	_ = s.Toggle("Chest")

	want := []string{"Turns", "Kicks", "Chest"}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !s.Contains("Kicks") || s.Contains("Abs") {
		t.Fatalf("unexpected membership: %v", s.Values())
	}
}

func TestSelectionRejectsUnknown(t *testing.T) {
	s := NewCategorySelection()
	err := s.Toggle("Yoga")
	if !errors.Is(err, ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("unknown value must not be selected")
	}
}

func TestSelectionReplace(t *testing.T) {
	s := NewTagSelection()
	_ = s.Toggle("Abs")
	s.Replace([]string{"Back", "Legacy Tag", "Back", "Hips"})

	want := []string{"Back", "Legacy Tag", "Hips"}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSelectionValuesIsCopy(t *testing.T) {
	s := NewTagSelection()
	_ = s.Toggle("Abs")
	v := s.Values()
	v[0] = "mutated"
	if s.Values()[0] != "Abs" {
		t.Fatal("Values must return a copy")
	}
}

func TestVocabularySizes(t *testing.T) {
	if len(AllCategories) != 9 {
		t.Fatalf("categories: got %d, want 9", len(AllCategories))
	}
	if len(AllTags) != 18 {
		t.Fatalf("tags: got %d, want 18", len(AllTags))
	}
}
