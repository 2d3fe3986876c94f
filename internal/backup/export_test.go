// ABOUTME: Tests for snapshot export and encoding.
// ABOUTME: Verifies document shape and the export/import round-trip property.
package backup

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"daytrack/internal/models"
	"daytrack/internal/storage"
)

func setupStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedStore(t *testing.T, db *storage.DB) {
	t.Helper()

	meditated := models.NewEvent("Meditated", models.TypeBoolean)
	sleep := models.NewEvent("Sleep", models.TypeNumber).WithUnit("hours").WithColor("#10b981")
	for _, e := range []*models.Event{meditated, sleep} {
		if err := db.CreateEvent(e); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	if _, err := db.SetValue(meditated.ID, "2024-01-01", "true"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if _, err := db.SetValue(sleep.ID, "2024-01-01", "7.5"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if _, err := db.SetValue(sleep.ID, "2024-01-02", "8"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
}

func TestExportSnapshot(t *testing.T) {
	db := setupStore(t)
	seedStore(t, db)

	snap, err := ExportSnapshot(db, Settings{ColorScheme: "dark"})
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	if snap.Version != FormatVersion {
		t.Errorf("Version mismatch: got %q, want %q", snap.Version, FormatVersion)
	}
	if snap.ExportID == "" {
		t.Error("Expected a generated export id")
	}
	if snap.ExportDate.IsZero() {
		t.Error("Expected an export date")
	}
	if len(snap.Events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(snap.Events))
	}
	if len(snap.EventValues) != 3 {
		t.Errorf("Expected 3 values, got %d", len(snap.EventValues))
	}
	if snap.Settings.ColorScheme != "dark" {
		t.Errorf("Settings not captured: %+v", snap.Settings)
	}
}

func TestEncodeJSONParses(t *testing.T) {
	db := setupStore(t)
	seedStore(t, db)

	snap, err := ExportSnapshot(db, Settings{})
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	data, err := snap.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	for _, key := range []string{"version", "exportDate", "events", "eventValues", "settings"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("Missing top-level field %q", key)
		}
	}
}

func TestEncodeYAMLParses(t *testing.T) {
	db := setupStore(t)
	seedStore(t, db)

	snap, err := ExportSnapshot(db, Settings{})
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	data, err := snap.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if doc["version"] != FormatVersion {
		t.Errorf("Expected version %q, got %v", FormatVersion, doc["version"])
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	db := setupStore(t)
	seedStore(t, db)

	snap, err := ExportSnapshot(db, Settings{ColorScheme: "light"})
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	path := t.TempDir() + "/backup.json"
	if err := WriteSnapshotFile(path, snap); err != nil {
		t.Fatalf("WriteSnapshotFile failed: %v", err)
	}

	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile failed: %v", err)
	}
	if got.ExportID != snap.ExportID {
		t.Errorf("ExportID mismatch: got %q, want %q", got.ExportID, snap.ExportID)
	}
	if len(got.Events) != len(snap.Events) || len(got.EventValues) != len(snap.EventValues) {
		t.Errorf("Counts mismatch: %d/%d events, %d/%d values",
			len(got.Events), len(snap.Events), len(got.EventValues), len(snap.EventValues))
	}
}

func TestReadSnapshotFileMissing(t *testing.T) {
	_, err := ReadSnapshotFile(t.TempDir() + "/nope.json")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	var ioErr IoError
	if !errors.As(err, &ioErr) {
		t.Errorf("Expected IoError, got %T: %v", err, err)
	}
}

// Round-trip property: importing an export into an empty store reproduces
// the same events (by name/type/color/unit) and the same
// (eventName, date, value) triples, though not the same ids.
func TestRoundTrip(t *testing.T) {
	src := setupStore(t)
	seedStore(t, src)

	snap, err := ExportSnapshot(src, Settings{})
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	dst := setupStore(t)
	result := Import(dst, snap, Options{})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}

	srcTriples := valueTriples(t, src)
	dstTriples := valueTriples(t, dst)
	if len(srcTriples) != len(dstTriples) {
		t.Fatalf("Triple counts differ: %d vs %d", len(srcTriples), len(dstTriples))
	}
	for k := range srcTriples {
		if !dstTriples[k] {
			t.Errorf("Missing triple after round-trip: %s", k)
		}
	}

	srcEvents, _ := src.ListEvents()
	dstEvents, _ := dst.ListEvents()
	if len(srcEvents) != len(dstEvents) {
		t.Fatalf("Event counts differ: %d vs %d", len(srcEvents), len(dstEvents))
	}
	for i, s := range srcEvents {
		d := dstEvents[i]
		if s.Name != d.Name || s.Type != d.Type || s.Color != d.Color {
			t.Errorf("Event %d mismatch: %+v vs %+v", i, s, d)
		}
		if (s.Unit == nil) != (d.Unit == nil) || (s.Unit != nil && *s.Unit != *d.Unit) {
			t.Errorf("Event %d unit mismatch", i)
		}
	}
}

func valueTriples(t *testing.T, db *storage.DB) map[string]bool {
	t.Helper()

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	names := make(map[int64]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	values, err := db.AllValues()
	if err != nil {
		t.Fatalf("AllValues failed: %v", err)
	}

	triples := make(map[string]bool, len(values))
	for _, v := range values {
		triples[names[v.EventID]+"|"+v.Date+"|"+v.Value] = true
	}
	return triples
}
