// Package model defines the core timeline data types.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared by the engine packages.
var (
	// ErrInvalidArgument reports a malformed date or an hour outside 0..23.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrHourNotDrawn reports a memo edit on a slot with no card drawn.
	ErrHourNotDrawn = errors.New("hour not drawn")
)

// HoursPerDay is the number of slots in a timeline.
const HoursPerDay = 24

// DateLayout is the calendar-date format used as the journal key.
const DateLayout = "2006-01-02"

// Date is an ISO 8601 calendar date (yyyy-mm-dd).
type Date string

// ParseDate validates s as a calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, ErrInvalidArgument)
	}
	return Date(s), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) String() string { return string(d) }

// Validate reports whether d is a well-formed calendar date.
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// LocalizedText maps a language code to display text.
// Every catalog instance carries the same key set (ko and en).
type LocalizedText map[string]string

// Resolve returns the text for lang, falling back to en, then ko.
func (t LocalizedText) Resolve(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	if s, ok := t["en"]; ok {
		return s
	}
	return t["ko"]
}

// Suit identifies a card's arcana family.
type Suit string

const (
	SuitMajor     Suit = "major"
	SuitCups      Suit = "cups"
	SuitWands     Suit = "wands"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

// Element is the classical element associated with a minor-arcana suit.
type Element string

const (
	ElementFire  Element = "fire"
	ElementWater Element = "water"
	ElementAir   Element = "air"
	ElementEarth Element = "earth"
)

// Card is one of the 78 tarot cards. Immutable after catalog init.
type Card struct {
	ID          string          `json:"id"`
	Name        LocalizedText   `json:"name"`
	Keywords    []LocalizedText `json:"keywords"`
	Description LocalizedText   `json:"description"`
	Suit        Suit            `json:"suit"`
	Number      int             `json:"number"`
	Element     Element         `json:"element,omitempty"`
}

// HourSlot is one clock hour of a day and its drawn card and memo.
// IsDrawn is true iff CardID is non-empty.
type HourSlot struct {
	Hour    int    `json:"hour"`
	CardID  string `json:"card_id,omitempty"`
	IsDrawn bool   `json:"is_drawn"`
	Memo    string `json:"memo,omitempty"`
}

// Draw assigns a card to the slot.
func (s *HourSlot) Draw(cardID string) {
	s.CardID = cardID
	s.IsDrawn = true
}

// SetMemo attaches a memo to a drawn slot.
func (s *HourSlot) SetMemo(memo string) error {
	if !s.IsDrawn {
		return fmt.Errorf("hour %d: %w", s.Hour, ErrHourNotDrawn)
	}
	s.Memo = memo
	return nil
}

// Validate checks the slot's internal consistency.
func (s HourSlot) Validate() error {
	if s.Hour < 0 || s.Hour >= HoursPerDay {
		return fmt.Errorf("hour %d out of range: %w", s.Hour, ErrInvalidArgument)
	}
	if s.IsDrawn != (s.CardID != "") {
		return fmt.Errorf("hour %d: is_drawn inconsistent with card_id: %w", s.Hour, ErrInvalidArgument)
	}
	if s.Memo != "" && !s.IsDrawn {
		return fmt.Errorf("hour %d: memo on undrawn slot: %w", s.Hour, ErrInvalidArgument)
	}
	return nil
}

// Slots holds the 24 ordered hour slots of one day. Slots[i].Hour == i.
type Slots [HoursPerDay]HourSlot

// NewSlots returns 24 empty slots in hour order.
func NewSlots() Slots {
	var out Slots
	for h := range out {
		out[h] = HourSlot{Hour: h}
	}
	return out
}

// Validate checks ordering and per-slot consistency.
func (sl Slots) Validate() error {
	for i, s := range sl {
		if s.Hour != i {
			return fmt.Errorf("slot %d has hour %d: %w", i, s.Hour, ErrInvalidArgument)
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DrawnCount returns how many slots have a card.
func (sl Slots) DrawnCount() int {
	n := 0
	for _, s := range sl {
		if s.IsDrawn {
			n++
		}
	}
	return n
}

// TimelineState is the live, mutable model of one day.
type TimelineState struct {
	Date  Date  `json:"date"`
	Slots Slots `json:"slots"`
}

// NewTimelineState creates a fresh empty state for date.
func NewTimelineState(date Date) (*TimelineState, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}
	return &TimelineState{Date: date, Slots: NewSlots()}, nil
}

// Validate checks the state's date and slots.
func (st *TimelineState) Validate() error {
	if err := st.Date.Validate(); err != nil {
		return err
	}
	return st.Slots.Validate()
}

// JournalEntry is an immutable persisted snapshot of one day.
// Slots is a copy; later edits to the live state do not reach it.
type JournalEntry struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	Slots     Slots     `json:"slots"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the entry's fields.
func (e *JournalEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is empty: %w", ErrInvalidArgument)
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.Slots.Validate()
}
