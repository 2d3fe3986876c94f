// ABOUTME: Repository interface for the event time-series store.
// ABOUTME: Defines the operation surface consumed by CLI, MCP, and backup.
package storage

import (
	"daytrack/internal/models"
)

// Repository defines the storage interface for events and their values.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Event operations
	CreateEvent(e *models.Event) error
	GetEvent(id int64) (*models.Event, error)
	ListEvents() ([]*models.Event, error)
	UpdateEvent(id int64, u EventUpdate) (*models.Event, error)
	DeleteEvent(id int64) error

	// Value operations
	SetValue(eventID int64, date, value string) (*models.EventValue, error)
	ValuesForDate(date string) ([]*models.EventValue, error)
	ValuesForEvent(eventID int64, dateRange *models.DateRange) ([]*models.EventValue, error)
	AllValues() ([]*models.EventValue, error)
	DeleteValue(eventID int64, date string) error

	// PutValues upserts a batch of values in a single transaction,
	// preserving the timestamps carried on each value. Used by restore.
	PutValues(values []*models.EventValue) error

	// Lifecycle
	Close() error
}

// EventUpdate describes a partial update to an event. Nil fields are
// left unchanged; updated_at is always refreshed.
type EventUpdate struct {
	Name     *string
	Type     *models.EventType
	Unit     *string
	Color    *string
	Icon     *string
	Position *int
}
