// Package store provides the journal storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/minjilee/tarot-hours/internal/model"
)

// Sentinel errors returned by Store operations.
var (
	// ErrAlreadySaved reports a second save attempt for a date that
	// already has a journal entry.
	ErrAlreadySaved = errors.New("already saved")
	// ErrNotFound reports a missing journal entry.
	ErrNotFound = errors.New("entry not found")
)

// SaveParams holds parameters for persisting a day's snapshot.
type SaveParams struct {
	Date  model.Date
	Slots model.Slots
}

// UpdateMemoParams holds parameters for editing a saved entry's memo.
type UpdateMemoParams struct {
	Date model.Date
	Hour int
	Memo string
}

// Store defines the journal storage interface.
//
// The model is single-process, single-writer; Save enforces the
// one-entry-per-date invariant atomically within that model.
type Store interface {
	// Save persists a snapshot as a new journal entry for its date.
	// Fails with ErrAlreadySaved if the date already has an entry.
	Save(ctx context.Context, p SaveParams) (*model.JournalEntry, error)

	// List returns all entries, newest date first.
	List(ctx context.Context) ([]model.JournalEntry, error)

	// GetByDate returns the entry for a date, or ErrNotFound.
	GetByDate(ctx context.Context, date model.Date) (*model.JournalEntry, error)

	// Delete removes an entry by id. A second delete of the same id
	// returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// UpdateMemo edits one hour's memo on an already-saved entry.
	// This is the only way history changes after a save.
	UpdateMemo(ctx context.Context, p UpdateMemoParams) error

	// PutLive persists today's in-progress timeline so an unsaved day
	// survives a restart.
	PutLive(ctx context.Context, st *model.TimelineState) error

	// GetLive returns the persisted live timeline, or ErrNotFound.
	GetLive(ctx context.Context) (*model.TimelineState, error)

	// ClearLive removes any persisted live timeline.
	ClearLive(ctx context.Context) error

	// Close closes the store.
	Close() error
}
