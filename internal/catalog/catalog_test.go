package catalog

import (
	"errors"
	"testing"

	"github.com/minjilee/tarot-hours/internal/model"
)

func TestDeckSize(t *testing.T) {
	all := All()
	if len(all) != Size {
		t.Fatalf("expected %d cards, got %d", Size, len(all))
	}
}

func TestDeckOrder(t *testing.T) {
	all := All()

	for i := 0; i < 22; i++ {
		if all[i].Suit != model.SuitMajor {
			t.Errorf("card %d: expected major, got %s", i, all[i].Suit)
		}
		if all[i].Number != i {
			t.Errorf("card %d: expected number %d, got %d", i, i, all[i].Number)
		}
	}

	wantSuits := []model.Suit{model.SuitCups, model.SuitWands, model.SuitSwords, model.SuitPentacles}
	for s, suit := range wantSuits {
		for r := 0; r < 14; r++ {
			c := all[22+s*14+r]
			if c.Suit != suit {
				t.Errorf("card %s: expected suit %s, got %s", c.ID, suit, c.Suit)
			}
			if c.Number != r+1 {
				t.Errorf("card %s: expected number %d, got %d", c.ID, r+1, c.Number)
			}
			if c.Element == "" {
				t.Errorf("card %s: missing element", c.ID)
			}
		}
	}
}

func TestGet(t *testing.T) {
	c, err := Get("major-00")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Name["en"] != "The Fool" {
		t.Errorf("expected The Fool, got %q", c.Name["en"])
	}

	if _, err := Get("major-22"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := Get(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range All() {
		if seen[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

// Every LocalizedText on every card must carry the same language keys.
func TestLocalizedKeySets(t *testing.T) {
	check := func(id string, txt model.LocalizedText) {
		t.Helper()
		if len(txt) != 2 || txt["ko"] == "" || txt["en"] == "" {
			t.Errorf("card %s: localized text missing ko/en: %v", id, txt)
		}
	}
	for _, c := range All() {
		check(c.ID, c.Name)
		check(c.ID, c.Description)
		for _, kw := range c.Keywords {
			check(c.ID, kw)
		}
	}
}

func TestIDAt(t *testing.T) {
	id, err := IDAt(0)
	if err != nil {
		t.Fatalf("IDAt(0): %v", err)
	}
	if id != "major-00" {
		t.Errorf("expected major-00, got %s", id)
	}

	if _, err := IDAt(Size); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].ID = "mutated"
	b := All()
	if b[0].ID != "major-00" {
		t.Error("All() exposed internal deck to mutation")
	}
}
