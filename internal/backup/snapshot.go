// ABOUTME: Versioned snapshot document and export functionality.
// ABOUTME: Serializes the full store to a portable JSON or YAML document.
package backup

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"daytrack/internal/models"
	"daytrack/internal/storage"
)

// FormatVersion tags the snapshot document layout.
const FormatVersion = "1.0.0"

// Snapshot is the full export document: every event, every value, and a
// small settings block, captured at one instant. Event ids inside the
// document are not portable; restore always remaps them.
type Snapshot struct {
	Version     string        `json:"version" yaml:"version"`
	ExportID    string        `json:"exportId" yaml:"export_id"`
	ExportDate  time.Time     `json:"exportDate" yaml:"export_date"`
	Events      []EventRecord `json:"events" yaml:"events"`
	EventValues []ValueRecord `json:"eventValues" yaml:"event_values"`
	Settings    Settings      `json:"settings" yaml:"settings"`
}

// EventRecord is the wire form of an event definition. Timestamps use a
// fixed textual format (RFC 3339).
type EventRecord struct {
	ID        int64   `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type" yaml:"type"`
	Unit      *string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Color     string  `json:"color" yaml:"color"`
	Icon      *string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order     int     `json:"order" yaml:"order"`
	CreatedAt string  `json:"createdAt" yaml:"created_at"`
	UpdatedAt string  `json:"updatedAt" yaml:"updated_at"`
}

// ValueRecord is the wire form of one dated observation.
type ValueRecord struct {
	EventID   int64  `json:"eventId" yaml:"event_id"`
	Date      string `json:"date" yaml:"date"`
	Value     string `json:"value" yaml:"value"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Settings is the whitelisted settings subset carried in a snapshot.
// Unknown keys in an incoming document are ignored, not rejected.
type Settings struct {
	ColorScheme string `json:"colorScheme,omitempty" yaml:"color_scheme,omitempty"`
}

// ExportSnapshot reads every event and every value and materializes the
// whole store as a snapshot document. No streaming; the document is
// built in memory.
func ExportSnapshot(repo storage.Repository, settings Settings) (*Snapshot, error) {
	events, err := repo.ListEvents()
	if err != nil {
		return nil, err
	}
	values, err := repo.AllValues()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Version:     FormatVersion,
		ExportID:    uuid.NewString(),
		ExportDate:  time.Now(),
		Events:      make([]EventRecord, 0, len(events)),
		EventValues: make([]ValueRecord, 0, len(values)),
		Settings:    settings,
	}

	for _, e := range events {
		snap.Events = append(snap.Events, EventRecord{
			ID:        e.ID,
			Name:      e.Name,
			Type:      string(e.Type),
			Unit:      e.Unit,
			Color:     e.Color,
			Icon:      e.Icon,
			Order:     e.Position,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
		})
	}

	for _, v := range values {
		snap.EventValues = append(snap.EventValues, ValueRecord{
			EventID:   v.EventID,
			Date:      v.Date,
			Value:     v.Value,
			Timestamp: v.Timestamp.Format(time.RFC3339),
		})
	}

	return snap, nil
}

// Validate checks that the required top-level fields are present. It
// does not validate per-field types beyond this.
func (s *Snapshot) Validate() error {
	if s.Version == "" {
		return FormatError{Reason: "missing version"}
	}
	if s.Events == nil {
		return FormatError{Reason: "missing events"}
	}
	if s.EventValues == nil {
		return FormatError{Reason: "missing eventValues"}
	}
	return nil
}

// EncodeJSON renders the snapshot as indented JSON, the format accepted
// back by restore.
func (s *Snapshot) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// EncodeYAML renders the snapshot as YAML for human consumption.
// Restore accepts JSON only.
func (s *Snapshot) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeJSON parses a snapshot from JSON bytes.
func DecodeJSON(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, FormatError{Reason: err.Error()}
	}
	return &snap, nil
}

// WriteSnapshotFile writes the snapshot as JSON to path.
func WriteSnapshotFile(path string, s *Snapshot) error {
	data, err := s.EncodeJSON()
	if err != nil {
		return FormatError{Reason: err.Error()}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return IoError{Op: "write snapshot", Path: path, Err: err}
	}
	return nil
}

// ReadSnapshotFile reads and parses a JSON snapshot from path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, IoError{Op: "read snapshot", Path: path, Err: err}
	}
	return DecodeJSON(data)
}

// eventFromRecord rebuilds a model event from its wire form. The
// document id is deliberately not carried over; the store assigns a
// fresh identity on create.
func eventFromRecord(rec EventRecord) *models.Event {
	e := &models.Event{
		Name:     rec.Name,
		Type:     models.EventType(rec.Type),
		Unit:     rec.Unit,
		Color:    rec.Color,
		Icon:     rec.Icon,
		Position: rec.Order,
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, rec.CreatedAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, rec.UpdatedAt)
	return e
}
