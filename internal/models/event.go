// ABOUTME: Event model and EventType enum for tracked metrics.
// ABOUTME: Events are user-defined definitions; values are dated observations.
package models

import (
	"time"
)

// EventType represents the logical type of a tracked event.
type EventType string

const (
	TypeBoolean EventType = "boolean"
	TypeNumber  EventType = "number"
	TypeString  EventType = "string"
)

// DefaultColor is the color token assigned when none is given.
const DefaultColor = "#3b82f6"

// PositionUnset marks an event whose sort position should be assigned
// by the store (append to end).
const PositionUnset = -1

// AllEventTypes returns all valid event types.
var AllEventTypes = []EventType{TypeBoolean, TypeNumber, TypeString}

// IsValidEventType checks if a string is a valid event type.
func IsValidEventType(s string) bool {
	for _, t := range AllEventTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Event represents a tracked metric definition.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      EventType `json:"type"`
	Unit      *string   `json:"unit,omitempty"`
	Color     string    `json:"color"`
	Icon      *string   `json:"icon,omitempty"`
	Position  int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewEvent creates a new Event with the default color and an unset
// position. The store assigns ID, position, and timestamps on create.
func NewEvent(name string, eventType EventType) *Event {
	return &Event{
		Name:     name,
		Type:     eventType,
		Color:    DefaultColor,
		Position: PositionUnset,
	}
}

// WithUnit sets the display unit. Meaningful only for number events.
func (e *Event) WithUnit(unit string) *Event {
	e.Unit = &unit
	return e
}

// WithColor sets the color token.
func (e *Event) WithColor(color string) *Event {
	e.Color = color
	return e
}

// WithIcon sets the icon name.
func (e *Event) WithIcon(icon string) *Event {
	e.Icon = &icon
	return e
}

// WithPosition sets an explicit sort position.
func (e *Event) WithPosition(pos int) *Event {
	e.Position = pos
	return e
}
