// Package draw maps (date, hour) pairs to tarot cards.
//
// Assignment is deterministic-by-seed: the card for an hour is derived
// from an FNV-1a hash of "<date>-<hour>" reduced modulo the catalog
// size, so a day's spread is reproducible across restarts without any
// persisted state, and drawing the same day twice changes nothing.
package draw

import (
	"fmt"
	"hash/fnv"

	"github.com/minjilee/tarot-hours/internal/catalog"
	"github.com/minjilee/tarot-hours/internal/model"
)

// Assign returns the card id for the given date and hour.
func Assign(date model.Date, hour int) (string, error) {
	if err := date.Validate(); err != nil {
		return "", err
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return "", fmt.Errorf("hour %d out of range: %w", hour, model.ErrInvalidArgument)
	}

	h := fnv.New32a()
	fmt.Fprintf(h, "%s-%d", date, hour)
	idx := int(h.Sum32() % catalog.Size)

	id, err := catalog.IDAt(idx)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Spread returns the full 24-card assignment for a date, hour order.
func Spread(date model.Date) ([model.HoursPerDay]string, error) {
	var out [model.HoursPerDay]string
	if err := date.Validate(); err != nil {
		return out, err
	}
	for h := 0; h < model.HoursPerDay; h++ {
		id, err := Assign(date, h)
		if err != nil {
			return out, err
		}
		out[h] = id
	}
	return out, nil
}
