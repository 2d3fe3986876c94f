// ABOUTME: Event CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for event definitions.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"daytrack/internal/models"
)

// CreateEvent stores a new event definition and assigns its identity.
// An unset position appends the event to the end of the display order.
func (d *DB) CreateEvent(e *models.Event) error {
	if strings.TrimSpace(e.Name) == "" {
		return ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !models.IsValidEventType(string(e.Type)) {
		return ValidationError{Field: "type", Reason: fmt.Sprintf("unknown event type %q", e.Type)}
	}
	if e.Color == "" {
		e.Color = models.DefaultColor
	}

	if e.Position == models.PositionUnset {
		next, err := d.nextPosition()
		if err != nil {
			return err
		}
		e.Position = next
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	query := `
		INSERT INTO events (name, type, unit, color, icon, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := d.db.Exec(query,
		e.Name,
		string(e.Type),
		e.Unit,
		e.Color,
		e.Icon,
		e.Position,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return StorageError{Op: "create event", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return StorageError{Op: "create event", Err: err}
	}
	e.ID = id
	return nil
}

// GetEvent retrieves an event by ID.
func (d *DB) GetEvent(id int64) (*models.Event, error) {
	query := `
		SELECT id, name, type, unit, color, icon, position, created_at, updated_at
		FROM events
		WHERE id = ?
	`
	e, err := scanEvent(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError{Resource: "event", Key: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	return e, nil
}

// ListEvents retrieves all events ordered by position, ties broken by id.
// Returns an empty slice when no events exist.
func (d *DB) ListEvents() ([]*models.Event, error) {
	query := `
		SELECT id, name, type, unit, color, icon, position, created_at, updated_at
		FROM events
		ORDER BY position ASC, id ASC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, StorageError{Op: "list events", Err: err}
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent applies a partial update and returns the updated event.
// Only non-nil fields change; updated_at is always refreshed.
func (d *DB) UpdateEvent(id int64, u EventUpdate) (*models.Event, error) {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if u.Type != nil && !models.IsValidEventType(string(*u.Type)) {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown event type %q", *u.Type)}
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().Format(time.RFC3339)}

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, string(*u.Type))
	}
	if u.Unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, *u.Unit)
	}
	if u.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *u.Color)
	}
	if u.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *u.Icon)
	}
	if u.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *u.Position)
	}

	query := "UPDATE events SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := d.db.Exec(query, args...)
	if err != nil {
		return nil, StorageError{Op: "update event", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, StorageError{Op: "update event", Err: err}
	}
	if affected == 0 {
		return nil, NotFoundError{Resource: "event", Key: strconv.FormatInt(id, 10)}
	}

	return d.GetEvent(id)
}

// DeleteEvent removes an event and every value recorded against it.
// The two deletes run in one transaction; an orphaned value is a
// correctness violation, not a cleanup task.
func (d *DB) DeleteEvent(id int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return StorageError{Op: "delete event", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM event_values WHERE event_id = ?", id); err != nil {
		return StorageError{Op: "delete event values", Err: err}
	}

	res, err := tx.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return StorageError{Op: "delete event", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return StorageError{Op: "delete event", Err: err}
	}
	if affected == 0 {
		return NotFoundError{Resource: "event", Key: strconv.FormatInt(id, 10)}
	}

	if err := tx.Commit(); err != nil {
		return StorageError{Op: "delete event", Err: err}
	}
	return nil
}

// nextPosition returns max(position)+1, or 0 for an empty store.
func (d *DB) nextPosition() (int, error) {
	var next int
	err := d.db.QueryRow("SELECT COALESCE(MAX(position) + 1, 0) FROM events").Scan(&next)
	if err != nil {
		return 0, StorageError{Op: "next position", Err: err}
	}
	return next, nil
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row *sql.Row) (*models.Event, error) {
	return scanEventFrom(row)
}

func scanEventRow(rows *sql.Rows) (*models.Event, error) {
	return scanEventFrom(rows)
}

func scanEventFrom(s scanner) (*models.Event, error) {
	var e models.Event
	var eventType, createdAt, updatedAt string
	var unit, icon sql.NullString

	err := s.Scan(&e.ID, &e.Name, &eventType, &unit, &e.Color, &icon, &e.Position, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, StorageError{Op: "scan event", Err: err}
	}

	e.Type = models.EventType(eventType)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if unit.Valid {
		e.Unit = &unit.String
	}
	if icon.Valid {
		e.Icon = &icon.String
	}

	return &e, nil
}
