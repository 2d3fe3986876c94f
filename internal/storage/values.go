// ABOUTME: Value upsert and read operations for SQLite storage.
// ABOUTME: One row per (event_id, date); later writes overwrite, never duplicate.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"daytrack/internal/models"
)

const valueColumns = "id, event_id, date, value, timestamp, created_at, updated_at"

// SetValue upserts one value on the (eventID, date) key. An existing row
// is overwritten (value and timestamp); otherwise a row is inserted.
// Referential integrity is checked explicitly rather than left to a
// foreign-key error.
func (d *DB) SetValue(eventID int64, date, value string) (*models.EventValue, error) {
	if !models.ValidDate(date) {
		return nil, ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	if _, err := d.GetEvent(eventID); err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO event_values (event_id, date, value, timestamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id, date) DO UPDATE SET
			value = excluded.value,
			timestamp = excluded.timestamp,
			updated_at = excluded.updated_at
	`
	if _, err := d.db.Exec(query, eventID, date, value, now, now, now); err != nil {
		return nil, StorageError{Op: "set value", Err: err}
	}

	return d.getValue(eventID, date)
}

// ValuesForDate retrieves all values recorded on one date across events.
func (d *DB) ValuesForDate(date string) ([]*models.EventValue, error) {
	if date == "" {
		return nil, ValidationError{Field: "date", Reason: "must not be empty; use AllValues for a full dump"}
	}
	query := "SELECT " + valueColumns + " FROM event_values WHERE date = ? ORDER BY event_id ASC"
	return d.queryValues("values for date", query, date)
}

// ValuesForEvent retrieves one event's history ordered by date ascending,
// optionally limited to an inclusive date range.
func (d *DB) ValuesForEvent(eventID int64, dateRange *models.DateRange) ([]*models.EventValue, error) {
	query := "SELECT " + valueColumns + " FROM event_values WHERE event_id = ?"
	args := []interface{}{eventID}

	if dateRange != nil {
		query += " AND date >= ? AND date <= ?"
		args = append(args, dateRange.Start, dateRange.End)
	}
	query += " ORDER BY date ASC"

	return d.queryValues("values for event", query, args...)
}

// AllValues retrieves every stored value. Used by export.
func (d *DB) AllValues() ([]*models.EventValue, error) {
	query := "SELECT " + valueColumns + " FROM event_values ORDER BY id ASC"
	return d.queryValues("all values", query)
}

// DeleteValue removes the single value recorded for (eventID, date).
func (d *DB) DeleteValue(eventID int64, date string) error {
	res, err := d.db.Exec("DELETE FROM event_values WHERE event_id = ? AND date = ?", eventID, date)
	if err != nil {
		return StorageError{Op: "delete value", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return StorageError{Op: "delete value", Err: err}
	}
	if affected == 0 {
		return NotFoundError{Resource: "value", Key: valueKey(eventID, date)}
	}
	return nil
}

// PutValues upserts a batch of values in one transaction, preserving the
// timestamps carried on each value. Restore uses this to keep a snapshot's
// write history intact.
func (d *DB) PutValues(values []*models.EventValue) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return StorageError{Op: "put values", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO event_values (event_id, date, value, timestamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id, date) DO UPDATE SET
			value = excluded.value,
			timestamp = excluded.timestamp,
			updated_at = excluded.updated_at
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return StorageError{Op: "put values", Err: err}
	}
	defer stmt.Close()

	now := time.Now()
	for _, v := range values {
		if !models.ValidDate(v.Date) {
			return ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", v.Date)}
		}
		ts := v.Timestamp
		if ts.IsZero() {
			ts = now
		}
		created := v.CreatedAt
		if created.IsZero() {
			created = now
		}
		updated := v.UpdatedAt
		if updated.IsZero() {
			updated = now
		}
		if _, err := stmt.Exec(
			v.EventID,
			v.Date,
			v.Value,
			ts.Format(time.RFC3339),
			created.Format(time.RFC3339),
			updated.Format(time.RFC3339),
		); err != nil {
			return StorageError{Op: "put values", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return StorageError{Op: "put values", Err: err}
	}
	return nil
}

// getValue reads back the row for (eventID, date).
func (d *DB) getValue(eventID int64, date string) (*models.EventValue, error) {
	query := "SELECT " + valueColumns + " FROM event_values WHERE event_id = ? AND date = ?"
	v, err := scanValueFrom(d.db.QueryRow(query, eventID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError{Resource: "value", Key: valueKey(eventID, date)}
		}
		return nil, err
	}
	return v, nil
}

func (d *DB) queryValues(op, query string, args ...interface{}) ([]*models.EventValue, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	values := []*models.EventValue{}
	for rows.Next() {
		v, err := scanValueFrom(rows)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanValueFrom(s scanner) (*models.EventValue, error) {
	var v models.EventValue
	var timestamp, createdAt, updatedAt string

	err := s.Scan(&v.ID, &v.EventID, &v.Date, &v.Value, &timestamp, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, StorageError{Op: "scan value", Err: err}
	}

	v.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &v, nil
}

func valueKey(eventID int64, date string) string {
	return strconv.FormatInt(eventID, 10) + "@" + date
}
