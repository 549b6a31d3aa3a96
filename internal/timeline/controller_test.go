package timeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/minjilee/tarot-hours/internal/draw"
	"github.com/minjilee/tarot-hours/internal/model"
	"github.com/minjilee/tarot-hours/internal/store"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newFixture(t *testing.T, at time.Time) (*Controller, *fakeClock, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := &fakeClock{t: at}
	c := New(clock, s)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c, clock, s
}

var jan15 = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestStartEmpty(t *testing.T) {
	c, _, _ := newFixture(t, jan15)

	st, phase, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if phase != PhaseEmpty {
		t.Errorf("expected empty phase, got %s", phase)
	}
	if st.Date != "2025-01-15" {
		t.Errorf("expected date 2025-01-15, got %s", st.Date)
	}
}

func TestDrawAllPopulatesEveryHour(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newFixture(t, jan15)

	if err := c.DrawAll(ctx); err != nil {
		t.Fatalf("draw: %v", err)
	}

	st, phase, _ := c.Snapshot(ctx)
	if phase != PhaseDrawn {
		t.Errorf("expected drawn phase, got %s", phase)
	}
	for h, slot := range st.Slots {
		if !slot.IsDrawn || slot.CardID == "" {
			t.Errorf("hour %d not drawn", h)
		}
	}
}

func TestDrawAllIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SetMemo(ctx, 9, "new job")
	first, _, _ := c.Snapshot(ctx)

	if err := c.DrawAll(ctx); err != nil {
		t.Fatalf("second draw: %v", err)
	}
	second, _, _ := c.Snapshot(ctx)

	if first.Slots != second.Slots {
		t.Error("second draw changed the spread or dropped memos")
	}
}

func TestDrawMatchesAssignment(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newFixture(t, jan15)

	c.DrawAll(ctx)
	st, _, _ := c.Snapshot(ctx)

	for h, slot := range st.Slots {
		want, _ := draw.Assign("2025-01-15", h)
		if slot.CardID != want {
			t.Errorf("hour %d: got %s, want %s", h, slot.CardID, want)
		}
	}
}

func TestMemoGating(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newFixture(t, jan15)

	err := c.SetMemo(ctx, 9, "too early")
	if !errors.Is(err, model.ErrHourNotDrawn) {
		t.Fatalf("expected ErrHourNotDrawn, got %v", err)
	}
	st, _, _ := c.Snapshot(ctx)
	if st.Slots[9].Memo != "" {
		t.Errorf("memo set despite rejection: %q", st.Slots[9].Memo)
	}

	if err := c.SetMemo(ctx, 25, "x"); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	c.DrawAll(ctx)
	if err := c.SetMemo(ctx, 9, "new job"); err != nil {
		t.Fatalf("memo after draw: %v", err)
	}
	st, _, _ = c.Snapshot(ctx)
	if st.Slots[9].Memo != "new job" {
		t.Errorf("expected 'new job', got %q", st.Slots[9].Memo)
	}
}

func TestSaveRequiresDraw(t *testing.T) {
	ctx := context.Background()
	c, _, s := newFixture(t, jan15)

	_, err := c.SaveToday(ctx)
	if !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}

	entries, _ := s.List(ctx)
	if len(entries) != 0 {
		t.Errorf("expected journal unchanged, got %d entries", len(entries))
	}
}

func TestSaveOnce(t *testing.T) {
	ctx := context.Background()
	c, _, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SetMemo(ctx, 9, "new job")

	entry, err := c.SaveToday(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if entry.Date != "2025-01-15" {
		t.Errorf("expected date 2025-01-15, got %s", entry.Date)
	}

	_, phase, _ := c.Snapshot(ctx)
	if phase != PhaseSaved {
		t.Errorf("expected saved phase, got %s", phase)
	}

	entries, _ := s.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Slots[9].Memo != "new job" {
		t.Errorf("expected hour-9 memo 'new job', got %q", entries[0].Slots[9].Memo)
	}

	if _, err := c.SaveToday(ctx); !errors.Is(err, store.ErrAlreadySaved) {
		t.Errorf("expected ErrAlreadySaved, got %v", err)
	}
	entries, _ = s.List(ctx)
	if len(entries) != 1 {
		t.Errorf("expected still 1 entry, got %d", len(entries))
	}
}

func TestLiveEditsDoNotTouchSavedEntry(t *testing.T) {
	ctx := context.Background()
	c, _, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SaveToday(ctx)

	if err := c.SetMemo(ctx, 9, "after save"); err != nil {
		t.Fatalf("live memo after save: %v", err)
	}

	e, _ := s.GetByDate(ctx, "2025-01-15")
	if e.Slots[9].Memo != "" {
		t.Errorf("live edit mutated saved entry: %q", e.Slots[9].Memo)
	}
}

func TestUpdateSavedMemo(t *testing.T) {
	ctx := context.Background()
	c, _, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SaveToday(ctx)

	if err := c.UpdateSavedMemo(ctx, "2025-01-15", 9, "revised"); err != nil {
		t.Fatalf("update saved memo: %v", err)
	}
	e, _ := s.GetByDate(ctx, "2025-01-15")
	if e.Slots[9].Memo != "revised" {
		t.Errorf("expected 'revised', got %q", e.Slots[9].Memo)
	}
}

func TestCurrentCard(t *testing.T) {
	ctx := context.Background()
	c, clock, _ := newFixture(t, jan15)

	if _, ok, err := c.CurrentCard(ctx); err != nil || ok {
		t.Fatalf("expected no card before draw, ok=%v err=%v", ok, err)
	}

	c.DrawAll(ctx)

	card, ok, err := c.CurrentCard(ctx)
	if err != nil || !ok {
		t.Fatalf("expected card after draw, ok=%v err=%v", ok, err)
	}
	want, _ := draw.Assign("2025-01-15", 10)
	if card.ID != want {
		t.Errorf("expected %s at hour 10, got %s", want, card.ID)
	}

	// Current hour is derived from the clock on every read.
	clock.Set(time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC))
	card, _, _ = c.CurrentCard(ctx)
	want, _ = draw.Assign("2025-01-15", 17)
	if card.ID != want {
		t.Errorf("expected %s at hour 17, got %s", want, card.ID)
	}
}

func TestRolloverDiscardsUnsavedDay(t *testing.T) {
	ctx := context.Background()
	c, clock, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SetMemo(ctx, 9, "gone tomorrow")

	clock.Set(time.Date(2025, 1, 16, 0, 5, 0, 0, time.UTC))

	if _, ok, err := c.CurrentCard(ctx); err != nil || ok {
		t.Fatalf("expected fresh empty day after rollover, ok=%v err=%v", ok, err)
	}
	st, phase, _ := c.Snapshot(ctx)
	if st.Date != "2025-01-16" {
		t.Errorf("expected date 2025-01-16, got %s", st.Date)
	}
	if phase != PhaseEmpty {
		t.Errorf("expected empty phase, got %s", phase)
	}

	// The unsaved day left no journal entry and no live row.
	if entries, _ := s.List(ctx); len(entries) != 0 {
		t.Errorf("unexpected journal entries: %d", len(entries))
	}
	if _, err := s.GetLive(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected live state cleared, got %v", err)
	}
}

func TestRolloverKeepsSavedDay(t *testing.T) {
	ctx := context.Background()
	c, clock, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SaveToday(ctx)

	clock.Set(time.Date(2025, 1, 16, 8, 0, 0, 0, time.UTC))

	_, phase, _ := c.Snapshot(ctx)
	if phase != PhaseEmpty {
		t.Errorf("new day should start empty, got %s", phase)
	}

	e, err := s.GetByDate(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("saved entry lost at rollover: %v", err)
	}
	if e.Slots.DrawnCount() != model.HoursPerDay {
		t.Errorf("saved entry incomplete: %d drawn", e.Slots.DrawnCount())
	}

	// The new day can be drawn and saved independently.
	c.DrawAll(ctx)
	if _, err := c.SaveToday(ctx); err != nil {
		t.Fatalf("save new day: %v", err)
	}
}

func TestRestartRehydratesLiveDay(t *testing.T) {
	ctx := context.Background()
	c, clock, s := newFixture(t, jan15)

	c.DrawAll(ctx)
	c.SetMemo(ctx, 9, "survives restart")

	// A second controller over the same store stands in for a restart.
	c2 := New(clock, s)
	if err := c2.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	st, phase, _ := c2.Snapshot(ctx)
	if phase != PhaseDrawn {
		t.Errorf("expected drawn phase after restart, got %s", phase)
	}
	if st.Slots[9].Memo != "survives restart" {
		t.Errorf("memo lost across restart: %q", st.Slots[9].Memo)
	}
}

func TestRestartDropsStaleLiveDay(t *testing.T) {
	ctx := context.Background()
	c, _, s := newFixture(t, jan15)
	c.DrawAll(ctx)

	// Restart on the next day: yesterday's live state is stale.
	nextDay := &fakeClock{t: time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)}
	c2 := New(nextDay, s)
	if err := c2.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	st, phase, _ := c2.Snapshot(ctx)
	if st.Date != "2025-01-16" || phase != PhaseEmpty {
		t.Errorf("expected fresh 2025-01-16 empty day, got %s (%s)", st.Date, phase)
	}
	if _, err := s.GetLive(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("stale live row not cleared: %v", err)
	}
}

func TestRestartSeesSavedPhase(t *testing.T) {
	ctx := context.Background()
	c, clock, s := newFixture(t, jan15)
	c.DrawAll(ctx)
	c.SaveToday(ctx)

	c2 := New(clock, s)
	if err := c2.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, phase, _ := c2.Snapshot(ctx); phase != PhaseSaved {
		t.Errorf("expected saved phase after restart, got %s", phase)
	}
}

func TestRunAppliesRollover(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, clock, s := newFixture(t, jan15)
	c.DrawAll(ctx)

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, 5*time.Millisecond) }()

	clock.Set(time.Date(2025, 1, 16, 0, 0, 30, 0, time.UTC))

	// Watch the store, not the controller: any controller read would
	// apply the rollover itself. The poll loop must clear the stale
	// live row on its own.
	deadline := time.After(2 * time.Second)
	for {
		if _, err := s.GetLive(context.Background()); errors.Is(err, store.ErrNotFound) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("rollover not applied by poll loop")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
