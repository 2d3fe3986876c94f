// ABOUTME: Tests for default-value classification and history filtering.
// ABOUTME: Covers the type-specific default rules and first-meaningful-date scan.
package analytics

import (
	"testing"

	"daytrack/internal/models"
)

func TestIsDefaultValue(t *testing.T) {
	tests := []struct {
		raw       string
		eventType models.EventType
		want      bool
	}{
		{"false", models.TypeBoolean, true},
		{"0", models.TypeBoolean, true},
		{"true", models.TypeBoolean, false},
		{"1", models.TypeBoolean, false},

		{"0", models.TypeNumber, true},
		{"0.0", models.TypeNumber, true},
		{"0.000", models.TypeNumber, true},
		{"0.1", models.TypeNumber, false},
		{"-3", models.TypeNumber, false},
		{"abc", models.TypeNumber, false}, // unparsable is not a zero

		{"", models.TypeString, true},
		{"  ", models.TypeString, true},
		{"\t\n", models.TypeString, true},
		{"hello", models.TypeString, false},
		{"  x ", models.TypeString, false},
	}

	for _, tt := range tests {
		got := IsDefaultValue(tt.raw, tt.eventType)
		if got != tt.want {
			t.Errorf("IsDefaultValue(%q, %s) = %v, want %v", tt.raw, tt.eventType, got, tt.want)
		}
	}
}

func TestFirstMeaningfulDate(t *testing.T) {
	a := &models.Event{ID: 1, Name: "A", Type: models.TypeBoolean}
	b := &models.Event{ID: 2, Name: "B", Type: models.TypeNumber}
	events := []*models.Event{a, b}

	values := []*models.EventValue{
		{EventID: 1, Date: "2024-01-01", Value: "false"},
		{EventID: 2, Date: "2024-01-01", Value: "0"},
		{EventID: 1, Date: "2024-01-02", Value: "true"},
	}

	date, ok := FirstMeaningfulDate(events, values)
	if !ok {
		t.Fatal("Expected a meaningful date")
	}
	if date != "2024-01-02" {
		t.Errorf("Expected 2024-01-02, got %s", date)
	}
}

func TestFirstMeaningfulDateNoEvents(t *testing.T) {
	values := []*models.EventValue{{EventID: 1, Date: "2024-01-01", Value: "true"}}
	if _, ok := FirstMeaningfulDate(nil, values); ok {
		t.Error("Expected no result with no events")
	}
}

func TestFirstMeaningfulDateAllDefault(t *testing.T) {
	events := []*models.Event{{ID: 1, Type: models.TypeNumber}}
	values := []*models.EventValue{
		{EventID: 1, Date: "2024-01-01", Value: "0"},
		{EventID: 1, Date: "2024-01-02", Value: "0.0"},
	}
	if _, ok := FirstMeaningfulDate(events, values); ok {
		t.Error("Expected no result when every value is default")
	}
}

func TestFirstMeaningfulDateIgnoresDeletedEvents(t *testing.T) {
	events := []*models.Event{{ID: 2, Type: models.TypeNumber}}
	values := []*models.EventValue{
		// Event 1 no longer exists; its signal must not count
		{EventID: 1, Date: "2024-01-01", Value: "true"},
		{EventID: 2, Date: "2024-01-05", Value: "3"},
	}

	date, ok := FirstMeaningfulDate(events, values)
	if !ok || date != "2024-01-05" {
		t.Errorf("Expected 2024-01-05, got %q (ok=%v)", date, ok)
	}
}

func TestFilterNonDefault(t *testing.T) {
	a := &models.Event{ID: 1, Type: models.TypeBoolean}
	b := &models.Event{ID: 2, Type: models.TypeNumber}
	events := []*models.Event{a, b}

	values := []*models.EventValue{
		{EventID: 1, Date: "2024-01-01", Value: "false"}, // default
		{EventID: 1, Date: "2024-01-02", Value: "true"},
		{EventID: 2, Date: "2024-01-03", Value: "5"},
		{EventID: 3, Date: "2024-01-04", Value: "9"}, // deleted event, dropped
		{EventID: 2, Date: "2024-02-01", Value: "7"},
	}

	got := FilterNonDefault(events, values, Query{})
	if len(got) != 3 {
		t.Fatalf("Expected 3 values, got %d", len(got))
	}

	// Inclusive date range
	got = FilterNonDefault(events, values, Query{Start: "2024-01-02", End: "2024-01-03"})
	if len(got) != 2 {
		t.Errorf("Expected 2 values in range, got %d", len(got))
	}

	// Single-event variant: equality filter applied first
	got = FilterNonDefault(events, values, Query{EventID: 2})
	if len(got) != 2 {
		t.Fatalf("Expected 2 values for event 2, got %d", len(got))
	}
	for _, v := range got {
		if v.EventID != 2 {
			t.Errorf("Expected only event 2, got event %d", v.EventID)
		}
	}
}

func TestDecode(t *testing.T) {
	if v, ok := Decode("7.5", models.TypeNumber).(Number); !ok || !v.Valid || v.Value != 7.5 {
		t.Errorf("Decode number failed: %+v", v)
	}
	if v, ok := Decode("oops", models.TypeNumber).(Number); !ok || v.Valid {
		t.Errorf("Expected invalid number, got %+v", v)
	}
	if v, ok := Decode("true", models.TypeBoolean).(Bool); !ok || !v.Value {
		t.Errorf("Decode boolean failed: %+v", v)
	}
	if v, ok := Decode("note", models.TypeString).(Text); !ok || v.Value != "note" {
		t.Errorf("Decode string failed: %+v", v)
	}
}
