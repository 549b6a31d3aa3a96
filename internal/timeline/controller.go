// Package timeline tracks the live 24-slot day and drives its lifecycle.
//
// The controller is a small state machine per day:
// uninitialized -> empty -> drawn -> saved. A day rolls over when the
// wall-clock date moves past the live state's date; unsaved state is
// discarded at rollover. One mutex serializes rollover checks against
// draw, memo, and save, so a pending save always lands under the old
// date and rollover applies after.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minjilee/tarot-hours/internal/catalog"
	"github.com/minjilee/tarot-hours/internal/draw"
	"github.com/minjilee/tarot-hours/internal/model"
	"github.com/minjilee/tarot-hours/internal/store"
)

// ErrNothingToSave reports a save attempt with no drawn hours.
var ErrNothingToSave = errors.New("nothing to save")

// Phase names the controller's lifecycle state for the live day.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseEmpty         Phase = "empty"
	PhaseDrawn         Phase = "drawn"
	PhaseSaved         Phase = "saved"
)

// DefaultPollInterval is how often Run checks for day rollover.
const DefaultPollInterval = 30 * time.Second

// Controller mediates between the live timeline and the journal store.
type Controller struct {
	mu    sync.Mutex
	clock Clock
	store store.Store
	state *model.TimelineState
	saved bool
}

// New creates a controller. Call Start before any other method.
func New(clock Clock, st store.Store) *Controller {
	return &Controller{clock: clock, store: st}
}

// Start rehydrates today's live timeline from the store, or begins a
// fresh empty day. A persisted live state from a previous date is stale
// and gets dropped.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := model.DateOf(c.clock.Now())

	live, err := c.store.GetLive(ctx)
	switch {
	case err == nil && live.Date == today:
		c.state = live
	case err == nil || errors.Is(err, store.ErrNotFound):
		if err == nil {
			if cerr := c.store.ClearLive(ctx); cerr != nil {
				return fmt.Errorf("clear stale live state: %w", cerr)
			}
		}
		fresh, err := model.NewTimelineState(today)
		if err != nil {
			return err
		}
		c.state = fresh
	default:
		return fmt.Errorf("load live state: %w", err)
	}

	return c.refreshSavedLocked(ctx)
}

// Run polls for day rollover until ctx is done. Interval <= 0 uses
// DefaultPollInterval. Rollover must be observed within a minute, so
// keep the interval at or below that.
func (c *Controller) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.mu.Lock()
			err := c.ensureTodayLocked(ctx)
			c.mu.Unlock()
			if err != nil {
				return err
			}
		}
	}
}

// DrawAll assigns cards to all 24 hours in one atomic update. The
// assignment is deterministic, so repeating the draw on the same day
// reproduces the same spread and keeps existing memos.
func (c *Controller) DrawAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureTodayLocked(ctx); err != nil {
		return err
	}

	spread, err := draw.Spread(c.state.Date)
	if err != nil {
		return err
	}

	// Populate a copy, persist it, then swap; readers never see a
	// partially drawn day.
	next := *c.state
	for h := range next.Slots {
		next.Slots[h].Draw(spread[h])
	}
	if err := c.store.PutLive(ctx, &next); err != nil {
		return fmt.Errorf("persist live state: %w", err)
	}
	c.state = &next
	return nil
}

// SetMemo attaches a memo to one drawn hour of the live day.
func (c *Controller) SetMemo(ctx context.Context, hour int, memo string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureTodayLocked(ctx); err != nil {
		return err
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return fmt.Errorf("hour %d out of range: %w", hour, model.ErrInvalidArgument)
	}

	next := *c.state
	if err := next.Slots[hour].SetMemo(memo); err != nil {
		return err
	}
	if err := c.store.PutLive(ctx, &next); err != nil {
		return fmt.Errorf("persist live state: %w", err)
	}
	c.state = &next
	return nil
}

// SaveToday persists the live day as a journal entry. A save racing
// midnight never lands under the new date: rollover applies first and
// the save is rejected with ErrNothingToSave on the fresh day.
func (c *Controller) SaveToday(ctx context.Context) (*model.JournalEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureTodayLocked(ctx); err != nil {
		return nil, err
	}
	if c.state.Slots.DrawnCount() == 0 {
		return nil, fmt.Errorf("no cards drawn for %s: %w", c.state.Date, ErrNothingToSave)
	}

	entry, err := c.store.Save(ctx, store.SaveParams{
		Date:  c.state.Date,
		Slots: c.state.Slots,
	})
	if err != nil {
		return nil, err
	}
	c.saved = true
	return entry, nil
}

// UpdateSavedMemo edits one hour's memo on an already-saved entry.
// Editing the live day never touches saved history; this is the
// explicit path for that.
func (c *Controller) UpdateSavedMemo(ctx context.Context, date model.Date, hour int, memo string) error {
	return c.store.UpdateMemo(ctx, store.UpdateMemoParams{Date: date, Hour: hour, Memo: memo})
}

// CurrentCard returns the card for the current wall-clock hour, or
// ok=false if that hour has not been drawn.
func (c *Controller) CurrentCard(ctx context.Context) (model.Card, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureTodayLocked(ctx); err != nil {
		return model.Card{}, false, err
	}

	hour := c.clock.Now().Hour()
	slot := c.state.Slots[hour]
	if !slot.IsDrawn {
		return model.Card{}, false, nil
	}
	card, err := catalog.Get(slot.CardID)
	if err != nil {
		return model.Card{}, false, err
	}
	return card, true, nil
}

// Snapshot returns a copy of the live state and its phase for display.
// Presentation code never mutates the live state directly.
func (c *Controller) Snapshot(ctx context.Context) (model.TimelineState, Phase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureTodayLocked(ctx); err != nil {
		return model.TimelineState{}, PhaseUninitialized, err
	}
	return *c.state, c.phaseLocked(), nil
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.state == nil:
		return PhaseUninitialized
	case c.saved:
		return PhaseSaved
	case c.state.Slots.DrawnCount() > 0:
		return PhaseDrawn
	default:
		return PhaseEmpty
	}
}

// ensureTodayLocked applies day rollover if the wall-clock date moved
// past the live state's date. Unsaved state is discarded.
func (c *Controller) ensureTodayLocked(ctx context.Context) error {
	if c.state == nil {
		return fmt.Errorf("controller not started: %w", model.ErrInvalidArgument)
	}

	today := model.DateOf(c.clock.Now())
	if c.state.Date == today {
		return nil
	}

	if err := c.store.ClearLive(ctx); err != nil {
		return fmt.Errorf("clear live state: %w", err)
	}
	fresh, err := model.NewTimelineState(today)
	if err != nil {
		return err
	}
	c.state = fresh
	return c.refreshSavedLocked(ctx)
}

func (c *Controller) refreshSavedLocked(ctx context.Context) error {
	_, err := c.store.GetByDate(ctx, c.state.Date)
	switch {
	case err == nil:
		c.saved = true
	case errors.Is(err, store.ErrNotFound):
		c.saved = false
	default:
		return fmt.Errorf("check saved entry: %w", err)
	}
	return nil
}
