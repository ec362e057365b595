// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/daybox/internal/slot"
)

// SQLite implements slot.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ slot.Repository = (*SQLite)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// GetDay retrieves the day stored for date, or nil when there is none.
func (s *SQLite) GetDay(ctx context.Context, date string) (*slot.Day, error) {
	return loadDay(ctx, s.db, date)
}

func loadDay(ctx context.Context, q querier, date string) (*slot.Day, error) {
	d := &slot.Day{Date: date}
	err := q.QueryRowContext(ctx,
		`SELECT start, total_time FROM days WHERE date = ?`, date,
	).Scan(&d.Start, &d.TotalTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying day: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, start, reqtime, assigned, fixed_time, fixed_length, description
		FROM slots
		WHERE date = ?
		ORDER BY position
	`, date)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var (
			id int64
			sl slot.Slot
		)
		if err := rows.Scan(&id, &sl.Start, &sl.ReqTime, &sl.Assigned,
			&sl.FixedTime, &sl.FixedLength, &sl.Description); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		ids = append(ids, id)
		d.Slots = append(d.Slots, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}
	_ = rows.Close()

	for i, id := range ids {
		subs, err := loadSubSlots(ctx, q, id)
		if err != nil {
			return nil, err
		}
		d.Slots[i].SubSlots = subs
	}

	return d, nil
}

func loadSubSlots(ctx context.Context, q querier, slotID int64) ([]slot.SubSlot, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT start, reqtime, assigned, fixed_time, fixed_length, description
		FROM subslots
		WHERE slot_id = ?
		ORDER BY position
	`, slotID)
	if err != nil {
		return nil, fmt.Errorf("querying subslots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := []slot.SubSlot{}
	for rows.Next() {
		var sub slot.SubSlot
		if err := rows.Scan(&sub.Start, &sub.ReqTime, &sub.Assigned,
			&sub.FixedTime, &sub.FixedLength, &sub.Description); err != nil {
			return nil, fmt.Errorf("scanning subslot: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subslots: %w", err)
	}
	return subs, nil
}

// SaveDay replaces the stored plan for the day's date in one transaction.
func (s *SQLite) SaveDay(ctx context.Context, d *slot.Day) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("saving day: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteDayTx(ctx, tx, d.Date); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO days (date, start, total_time, updated_at) VALUES (?, ?, ?, ?)`,
		d.Date, d.Start, d.TotalTime, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting day: %w", err)
	}

	slotStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO slots (
			date, position, start, reqtime, assigned, fixed_time, fixed_length, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = slotStmt.Close() }()

	subStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subslots (
			slot_id, position, start, reqtime, assigned, fixed_time, fixed_length, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = subStmt.Close() }()

	for i, sl := range d.Slots {
		result, err := slotStmt.ExecContext(ctx,
			d.Date, i, sl.Start, sl.ReqTime, sl.Assigned,
			sl.FixedTime, sl.FixedLength, sl.Description,
		)
		if err != nil {
			return fmt.Errorf("inserting slot %q: %w", sl.Description, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}

		for j, sub := range sl.SubSlots {
			if _, err := subStmt.ExecContext(ctx,
				id, j, sub.Start, sub.ReqTime, sub.Assigned,
				sub.FixedTime, sub.FixedLength, sub.Description,
			); err != nil {
				return fmt.Errorf("inserting subslot %q: %w", sub.Description, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListDays returns all stored days between from and to (inclusive).
func (s *SQLite) ListDays(ctx context.Context, from, to string) ([]*slot.Day, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date FROM days WHERE date >= ? AND date <= ? ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}
	_ = rows.Close()

	days := make([]*slot.Day, 0, len(dates))
	for _, date := range dates {
		d, err := loadDay(ctx, s.db, date)
		if err != nil {
			return nil, err
		}
		if d != nil {
			days = append(days, d)
		}
	}
	return days, nil
}

// DeleteDay removes the plan stored for date.
func (s *SQLite) DeleteDay(ctx context.Context, date string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteDayTx(ctx, tx, date); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func deleteDayTx(ctx context.Context, tx *sql.Tx, date string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM subslots WHERE slot_id IN (SELECT id FROM slots WHERE date = ?)`, date,
	); err != nil {
		return fmt.Errorf("deleting subslots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE date = ?`, date); err != nil {
		return fmt.Errorf("deleting slots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM days WHERE date = ?`, date); err != nil {
		return fmt.Errorf("deleting day: %w", err)
	}
	return nil
}

// SaveTemplate stores t, replacing any template with the same name.
// Template slots are kept as a JSON document in a single column.
func (s *SQLite) SaveTemplate(ctx context.Context, t slot.Template) error {
	if t.Name == "" {
		return slot.ErrEmptyTemplateName
	}

	data, err := json.Marshal(t.Slots)
	if err != nil {
		return fmt.Errorf("encoding template slots: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO templates (name, start, total_time, slots) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			start = excluded.start,
			total_time = excluded.total_time,
			slots = excluded.slots
	`, t.Name, t.Start, t.TotalTime, string(data))
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template by name, or nil when there is none.
func (s *SQLite) GetTemplate(ctx context.Context, name string) (*slot.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, start, total_time, slots FROM templates WHERE name = ?`, name)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns all templates ordered by name.
func (s *SQLite) ListTemplates(ctx context.Context) ([]slot.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, start, total_time, slots FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []slot.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(sc scanner) (slot.Template, error) {
	var (
		t    slot.Template
		data string
	)
	if err := sc.Scan(&t.Name, &t.Start, &t.TotalTime, &data); err != nil {
		if err == sql.ErrNoRows {
			return t, err
		}
		return t, fmt.Errorf("scanning template: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &t.Slots); err != nil {
		return t, fmt.Errorf("decoding template %q: %w", t.Name, err)
	}
	return t, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
