// ABOUTME: Pure analytics over already-loaded events and values.
// ABOUTME: Trims placeholder noise so visualizations start at real signal.
package analytics

import (
	"sort"

	"daytrack/internal/models"
)

// Query narrows FilterNonDefault to an optional inclusive date range
// and/or a single event.
type Query struct {
	Start   string // inclusive lower bound, empty for none
	End     string // inclusive upper bound, empty for none
	EventID int64  // 0 for all events
}

// FirstMeaningfulDate returns the earliest date on which at least one
// value of a still-existing event is non-default per that event's type.
// Early history is often placeholder data entered while the user is just
// getting started; visualizations start from the date returned here.
// ok is false when there are no events or no date qualifies.
func FirstMeaningfulDate(events []*models.Event, values []*models.EventValue) (date string, ok bool) {
	if len(events) == 0 {
		return "", false
	}
	types := typesByID(events)

	byDate := make(map[string][]*models.EventValue)
	for _, v := range values {
		byDate[v.Date] = append(byDate[v.Date], v)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		for _, v := range byDate[d] {
			t, exists := types[v.EventID]
			if !exists {
				continue
			}
			if !IsDefaultValue(v.Value, t) {
				return d, true
			}
		}
	}
	return "", false
}

// FilterNonDefault returns the values that belong to a still-existing
// event, fall inside the query's inclusive date range, and are not
// default per their event's type. Values of deleted events are dropped
// silently.
func FilterNonDefault(events []*models.Event, values []*models.EventValue, q Query) []*models.EventValue {
	types := typesByID(events)

	out := []*models.EventValue{}
	for _, v := range values {
		if q.EventID != 0 && v.EventID != q.EventID {
			continue
		}
		t, exists := types[v.EventID]
		if !exists {
			continue
		}
		if q.Start != "" && v.Date < q.Start {
			continue
		}
		if q.End != "" && v.Date > q.End {
			continue
		}
		if IsDefaultValue(v.Value, t) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func typesByID(events []*models.Event) map[int64]models.EventType {
	types := make(map[int64]models.EventType, len(events))
	for _, e := range events {
		types[e.ID] = e.Type
	}
	return types
}
