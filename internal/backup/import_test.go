// ABOUTME: Tests for the snapshot restore engine.
// ABOUTME: Covers ID remapping, clearExisting, batching, progress, and the Result boundary.
package backup

import (
	"fmt"
	"testing"

	"daytrack/internal/models"
	"daytrack/internal/storage"
)

func testSnapshot() *Snapshot {
	unit := "hours"
	return &Snapshot{
		Version:  FormatVersion,
		ExportID: "test-export",
		Events: []EventRecord{
			{ID: 101, Name: "Meditated", Type: "boolean", Color: "#3b82f6", Order: 0},
			{ID: 102, Name: "Sleep", Type: "number", Unit: &unit, Color: "#10b981", Order: 1},
		},
		EventValues: []ValueRecord{
			{EventID: 101, Date: "2024-01-01", Value: "true", Timestamp: "2024-01-01T20:00:00Z"},
			{EventID: 102, Date: "2024-01-01", Value: "7.5", Timestamp: "2024-01-01T21:00:00Z"},
			{EventID: 102, Date: "2024-01-02", Value: "8", Timestamp: "2024-01-02T21:00:00Z"},
		},
	}
}

func TestImportRemapsIDs(t *testing.T) {
	db := setupStore(t)

	// Occupy the low id space so document ids cannot be reused
	existing := models.NewEvent("Existing", models.TypeString)
	if err := db.CreateEvent(existing); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	result := Import(db, testSnapshot(), Options{})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}
	if result.Events != 2 || result.Values != 3 {
		t.Errorf("Counts wrong: %+v", result)
	}

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events (1 existing + 2 imported), got %d", len(events))
	}
	for _, e := range events {
		if e.ID == 101 || e.ID == 102 {
			t.Errorf("Document id %d leaked into the store", e.ID)
		}
	}

	// Values follow their events through the mapping
	var sleep *models.Event
	for _, e := range events {
		if e.Name == "Sleep" {
			sleep = e
		}
	}
	if sleep == nil {
		t.Fatal("Imported event Sleep not found")
	}
	history, err := db.ValuesForEvent(sleep.ID, nil)
	if err != nil {
		t.Fatalf("ValuesForEvent failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 values for Sleep, got %d", len(history))
	}
}

func TestImportClearExisting(t *testing.T) {
	db := setupStore(t)

	for i := 0; i < 3; i++ {
		e := models.NewEvent(fmt.Sprintf("Old %d", i), models.TypeBoolean)
		if err := db.CreateEvent(e); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		if _, err := db.SetValue(e.ID, "2023-12-31", "true"); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
	}

	result := Import(db, testSnapshot(), Options{ClearExisting: true})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected exactly 2 events post-import, got %d", len(events))
	}

	values, err := db.AllValues()
	if err != nil {
		t.Fatalf("AllValues failed: %v", err)
	}
	if len(values) != 3 {
		t.Errorf("Expected only imported values, got %d", len(values))
	}
}

func TestImportProgressMonotonicReaching100Once(t *testing.T) {
	db := setupStore(t)

	var percents []int
	result := Import(db, testSnapshot(), Options{
		ClearExisting: true,
		OnProgress: func(percent int, message string) {
			percents = append(percents, percent)
			if message == "" {
				t.Error("Expected a phase message with every report")
			}
		},
	})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}

	if len(percents) == 0 {
		t.Fatal("Expected progress reports")
	}
	hundreds := 0
	for i, p := range percents {
		if p < 0 || p > 100 {
			t.Errorf("Percent out of range: %d", p)
		}
		if i > 0 && p < percents[i-1] {
			t.Errorf("Progress decreased: %d after %d", p, percents[i-1])
		}
		if p == 100 {
			hundreds++
		}
	}
	if hundreds != 1 {
		t.Errorf("Expected 100%% exactly once, got %d times (reports: %v)", hundreds, percents)
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("Expected final report at 100, got %d", percents[len(percents)-1])
	}
}

func TestImportNilProgressSink(t *testing.T) {
	db := setupStore(t)

	result := Import(db, testSnapshot(), Options{OnProgress: nil})
	if !result.OK {
		t.Fatalf("Import without sink failed: %s", result.Message)
	}
}

func TestImportSkipsUnmappedValues(t *testing.T) {
	db := setupStore(t)

	snap := testSnapshot()
	// References an event excluded from the export
	snap.EventValues = append(snap.EventValues,
		ValueRecord{EventID: 999, Date: "2024-01-03", Value: "5", Timestamp: "2024-01-03T09:00:00Z"})

	result := Import(db, snap, Options{})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped value, got %d", result.Skipped)
	}
	if result.Values != 3 {
		t.Errorf("Expected 3 restored values, got %d", result.Values)
	}
}

func TestImportValidatesDocument(t *testing.T) {
	db := setupStore(t)

	tests := []struct {
		name string
		snap *Snapshot
	}{
		{"nil document", nil},
		{"missing version", &Snapshot{Events: []EventRecord{}, EventValues: []ValueRecord{}}},
		{"missing events", &Snapshot{Version: FormatVersion, EventValues: []ValueRecord{}}},
		{"missing values", &Snapshot{Version: FormatVersion, Events: []EventRecord{}}},
	}

	for _, tt := range tests {
		result := Import(db, tt.snap, Options{})
		if result.OK {
			t.Errorf("%s: expected failed result", tt.name)
		}
		if result.Message == "" {
			t.Errorf("%s: expected a failure message", tt.name)
		}
	}
}

func TestImportFailureKeepsPartialData(t *testing.T) {
	db := setupStore(t)

	snap := testSnapshot()
	// Second event is malformed; the first is written before the failure
	snap.Events[1].Type = "duration"

	result := Import(db, snap, Options{})
	if result.OK {
		t.Fatal("Expected failed result")
	}
	if result.Events != 1 {
		t.Errorf("Expected 1 event written before failure, got %d", result.Events)
	}

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	// No rollback: the first event survives
	if len(events) != 1 {
		t.Errorf("Expected partial data kept, got %d events", len(events))
	}
}

func TestImportBatchesLargeValueSets(t *testing.T) {
	db := setupStore(t)

	events := []EventRecord{{ID: 1, Name: "Steps", Type: "number", Color: "#3b82f6"}}
	values := make([]ValueRecord, 0, 250)
	for i := 0; i < 250; i++ {
		values = append(values, ValueRecord{
			EventID:   1,
			Date:      fmt.Sprintf("2024-%02d-%02d", i/28+1, i%28+1),
			Value:     fmt.Sprintf("%d", i),
			Timestamp: "2024-01-01T00:00:00Z",
		})
	}
	snap := &Snapshot{Version: FormatVersion, Events: events, EventValues: values}

	batchReports := 0
	result := Import(db, snap, Options{
		OnProgress: func(percent int, message string) {
			batchReports++
		},
	})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}
	if result.Values != 250 {
		t.Errorf("Expected 250 values, got %d", result.Values)
	}

	// 250 values at 100 per batch means three value batches reported
	if batchReports < 3 {
		t.Errorf("Expected at least 3 progress reports, got %d", batchReports)
	}

	stored, err := db.AllValues()
	if err != nil {
		t.Fatalf("AllValues failed: %v", err)
	}
	if len(stored) != 250 {
		t.Errorf("Expected 250 stored values, got %d", len(stored))
	}
}

func TestImportRestoresSettings(t *testing.T) {
	db := setupStore(t)

	snap := testSnapshot()
	snap.Settings = Settings{ColorScheme: "dark"}

	applied := map[string]string{}
	result := Import(db, snap, Options{
		ApplySetting: func(key, value string) error {
			applied[key] = value
			return nil
		},
	})
	if !result.OK {
		t.Fatalf("Import failed: %s", result.Message)
	}
	if applied["colorScheme"] != "dark" {
		t.Errorf("Expected colorScheme=dark applied, got %v", applied)
	}
}

func TestImportSettingFailureFailsResult(t *testing.T) {
	db := setupStore(t)

	snap := testSnapshot()
	snap.Settings = Settings{ColorScheme: "dark"}

	result := Import(db, snap, Options{
		ApplySetting: func(key, value string) error {
			return fmt.Errorf("disk full")
		},
	})
	if result.OK {
		t.Fatal("Expected failed result when settings cannot be applied")
	}
	// Events and values written before the failure are kept
	if result.Events != 2 || result.Values != 3 {
		t.Errorf("Expected prior phases counted, got %+v", result)
	}
}

var _ storage.Repository = (*storage.DB)(nil)
