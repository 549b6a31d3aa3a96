package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/minjilee/tarot-hours/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id         TEXT PRIMARY KEY,
		day        TEXT NOT NULL UNIQUE,
		slots      TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_day ON journal_entries(day DESC);

	CREATE TABLE IF NOT EXISTS live_day (
		day        TEXT PRIMARY KEY,
		slots      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, p SaveParams) (*model.JournalEntry, error) {
	if err := p.Date.Validate(); err != nil {
		return nil, err
	}
	if err := p.Slots.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &model.JournalEntry{
		ID:        s.newID(),
		Date:      p.Date,
		Slots:     p.Slots,
		CreatedAt: now,
	}

	slotsJSON, err := json.Marshal(entry.Slots)
	if err != nil {
		return nil, fmt.Errorf("marshal slots: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check-then-create inside one transaction; the UNIQUE constraint
	// on day backs this up.
	var existing string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM journal_entries WHERE day = ?`, p.Date.String()).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("entry for %s: %w", p.Date, ErrAlreadySaved)
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO journal_entries (id, day, slots, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Date.String(), string(slotsJSON), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, day, slots, created_at FROM journal_entries ORDER BY day DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetByDate(ctx context.Context, date model.Date) (*model.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, day, slots, created_at FROM journal_entries WHERE day = ?`, date.String())
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entry for %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) UpdateMemo(ctx context.Context, p UpdateMemoParams) error {
	if p.Hour < 0 || p.Hour >= model.HoursPerDay {
		return fmt.Errorf("hour %d out of range: %w", p.Hour, model.ErrInvalidArgument)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var slotsJSON string
	err = tx.QueryRowContext(ctx,
		`SELECT slots FROM journal_entries WHERE day = ?`, p.Date.String()).Scan(&slotsJSON)
	if err == sql.ErrNoRows {
		return fmt.Errorf("entry for %s: %w", p.Date, ErrNotFound)
	}
	if err != nil {
		return err
	}

	var slots model.Slots
	if err := json.Unmarshal([]byte(slotsJSON), &slots); err != nil {
		return fmt.Errorf("unmarshal slots: %w", err)
	}
	if err := slots[p.Hour].SetMemo(p.Memo); err != nil {
		return err
	}

	b, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal slots: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE journal_entries SET slots = ? WHERE day = ?`, string(b), p.Date.String())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) PutLive(ctx context.Context, st *model.TimelineState) error {
	if err := st.Validate(); err != nil {
		return err
	}
	slotsJSON, err := json.Marshal(st.Slots)
	if err != nil {
		return fmt.Errorf("marshal slots: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Single live row: replace whatever day was there before.
	if _, err := tx.ExecContext(ctx, `DELETE FROM live_day`); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO live_day (day, slots, updated_at) VALUES (?, ?, ?)`,
		st.Date.String(), string(slotsJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetLive(ctx context.Context) (*model.TimelineState, error) {
	var day, slotsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT day, slots FROM live_day LIMIT 1`).Scan(&day, &slotsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("live timeline: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	date, err := model.ParseDate(day)
	if err != nil {
		return nil, err
	}
	st := &model.TimelineState{Date: date}
	if err := json.Unmarshal([]byte(slotsJSON), &st.Slots); err != nil {
		return nil, fmt.Errorf("unmarshal slots: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) ClearLive(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM live_day`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.JournalEntry, error) {
	var e model.JournalEntry
	var day, slotsJSON, createdAt string

	if err := row.Scan(&e.ID, &day, &slotsJSON, &createdAt); err != nil {
		return e, err
	}

	date, err := model.ParseDate(day)
	if err != nil {
		return e, err
	}
	e.Date = date
	if err := json.Unmarshal([]byte(slotsJSON), &e.Slots); err != nil {
		return e, fmt.Errorf("unmarshal slots: %w", err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return e, nil
}
