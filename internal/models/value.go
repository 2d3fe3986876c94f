// ABOUTME: EventValue model and date helpers.
// ABOUTME: One value per (event, date); dates are zero-padded YYYY-MM-DD strings.
package models

import (
	"time"
)

// DateFormat is the calendar date layout used for all value dates.
// Zero-padded so lexical comparison matches chronological order.
const DateFormat = "2006-01-02"

// EventValue represents one observation of one event on one calendar day.
// The business key is (EventID, Date); later writes overwrite earlier ones.
type EventValue struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	Date      string    `json:"date"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	if len(s) != len(DateFormat) {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// Today returns the current calendar date in DateFormat.
func Today() string {
	return time.Now().Format(DateFormat)
}

// DateRange is an inclusive [Start, End] filter on value dates.
// Comparison is lexical, which is chronological for DateFormat dates.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether date falls inside the range.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}
