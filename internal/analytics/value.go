// ABOUTME: Typed decoding of text-encoded event values.
// ABOUTME: Classification logic operates on the decoded sum type, not raw strings.
package analytics

import (
	"strconv"
	"strings"

	"daytrack/internal/models"
)

// TypedValue is the decoded form of a stored value text. Exactly one of
// Bool, Number, or Text applies, selected by the owning event's type.
type TypedValue interface {
	// IsDefault reports whether the value carries no real signal under
	// its type-specific rule (false/zero/empty).
	IsDefault() bool
}

// Bool is a decoded boolean observation.
type Bool struct {
	Value bool
}

func (b Bool) IsDefault() bool {
	return !b.Value
}

// Number is a decoded numeric observation. Valid is false when the
// stored text did not parse as a number.
type Number struct {
	Value float64
	Valid bool
}

func (n Number) IsDefault() bool {
	return n.Valid && n.Value == 0
}

// Text is a decoded free-text observation.
type Text struct {
	Value string
}

func (t Text) IsDefault() bool {
	return strings.TrimSpace(t.Value) == ""
}

// Decode interprets a stored value text under the given event type.
func Decode(raw string, eventType models.EventType) TypedValue {
	switch eventType {
	case models.TypeBoolean:
		return Bool{Value: raw != "false" && raw != "0"}
	case models.TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return Number{Value: f, Valid: err == nil}
	default:
		return Text{Value: raw}
	}
}

// IsDefaultValue classifies a stored value text as "default" (recorded
// but uninteresting) for the given event type.
func IsDefaultValue(raw string, eventType models.EventType) bool {
	return Decode(raw, eventType).IsDefault()
}
