// ABOUTME: MCP tool implementations for the daytrack event store.
// ABOUTME: Exposes event CRUD, value logging, and history queries.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"daytrack/internal/analytics"
	"daytrack/internal/models"
	"daytrack/internal/storage"
)

func (s *Server) registerTools() {
	// add_event
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_event",
		Description: "Create a tracked event definition (boolean, number, or string)",
	}, s.handleAddEvent)

	// list_events
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_events",
		Description: "List all tracked events in display order",
	}, s.handleListEvents)

	// update_event
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_event",
		Description: "Update an event's name, unit, color, icon, or position",
	}, s.handleUpdateEvent)

	// delete_event
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_event",
		Description: "Delete an event and all its recorded values",
	}, s.handleDeleteEvent)

	// log_value
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_value",
		Description: "Record a value for an event on a calendar date (overwrites a prior value for the same date)",
	}, s.handleLogValue)

	// values_for_date
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "values_for_date",
		Description: "List all values recorded on one date",
	}, s.handleValuesForDate)

	// event_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "event_history",
		Description: "Get one event's history, optionally restricted to a date range",
	}, s.handleEventHistory)

	// first_meaningful_date
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "first_meaningful_date",
		Description: "Find the first date with a non-default value for any event",
	}, s.handleFirstMeaningfulDate)
}

// Tool input/output types

type addEventInput struct {
	Name     string `json:"name" jsonschema:"description=Display name of the event,required"`
	Type     string `json:"type" jsonschema:"description=Event type (boolean, number, string),required"`
	Unit     string `json:"unit,omitempty" jsonschema:"description=Display unit (number events only)"`
	Color    string `json:"color,omitempty" jsonschema:"description=Hex color token, defaults to #3b82f6"`
	Icon     string `json:"icon,omitempty" jsonschema:"description=Icon name"`
	Position *int   `json:"position,omitempty" jsonschema:"description=Sort position, defaults to end of list"`
}

type eventOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type updateEventInput struct {
	ID       int64   `json:"id" jsonschema:"description=Event ID,required"`
	Name     *string `json:"name,omitempty" jsonschema:"description=New display name"`
	Unit     *string `json:"unit,omitempty" jsonschema:"description=New unit"`
	Color    *string `json:"color,omitempty" jsonschema:"description=New color token"`
	Icon     *string `json:"icon,omitempty" jsonschema:"description=New icon name"`
	Position *int    `json:"position,omitempty" jsonschema:"description=New sort position"`
}

type deleteEventInput struct {
	ID int64 `json:"id" jsonschema:"description=Event ID,required"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type logValueInput struct {
	EventID int64  `json:"event_id" jsonschema:"description=Event ID,required"`
	Date    string `json:"date,omitempty" jsonschema:"description=Calendar date (YYYY-MM-DD), defaults to today"`
	Value   string `json:"value" jsonschema:"description=Value text; interpreted per the event's type,required"`
}

type valuesForDateInput struct {
	Date string `json:"date" jsonschema:"description=Calendar date (YYYY-MM-DD),required"`
}

type eventHistoryInput struct {
	EventID int64  `json:"event_id" jsonschema:"description=Event ID,required"`
	Start   string `json:"start,omitempty" jsonschema:"description=Inclusive range start (YYYY-MM-DD)"`
	End     string `json:"end,omitempty" jsonschema:"description=Inclusive range end (YYYY-MM-DD)"`
}

type firstMeaningfulDateInput struct{}

// Tool handlers

func (s *Server) handleAddEvent(ctx context.Context, req *mcp.CallToolRequest, input addEventInput) (*mcp.CallToolResult, eventOutput, error) {
	if !models.IsValidEventType(input.Type) {
		return nil, eventOutput{}, fmt.Errorf("unknown event type: %s (use boolean, number, or string)", input.Type)
	}

	e := models.NewEvent(input.Name, models.EventType(input.Type))
	if input.Unit != "" {
		e.WithUnit(input.Unit)
	}
	if input.Color != "" {
		e.WithColor(input.Color)
	}
	if input.Icon != "" {
		e.WithIcon(input.Icon)
	}
	if input.Position != nil {
		e.WithPosition(*input.Position)
	}

	if err := s.repo.CreateEvent(e); err != nil {
		return nil, eventOutput{}, fmt.Errorf("failed to create event: %w", err)
	}

	return nil, eventOutput{
		ID:      e.ID,
		Name:    e.Name,
		Type:    string(e.Type),
		Message: fmt.Sprintf("Added %s event %q (ID: %d)", e.Type, e.Name, e.ID),
	}, nil
}

func (s *Server) handleListEvents(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	events, err := s.repo.ListEvents()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events: %w", err)
	}

	if len(events) == 0 {
		return nil, map[string]interface{}{"message": "No events found."}, nil
	}

	return nil, events, nil
}

func (s *Server) handleUpdateEvent(ctx context.Context, req *mcp.CallToolRequest, input updateEventInput) (*mcp.CallToolResult, eventOutput, error) {
	u := storage.EventUpdate{
		Name:     input.Name,
		Unit:     input.Unit,
		Color:    input.Color,
		Icon:     input.Icon,
		Position: input.Position,
	}

	e, err := s.repo.UpdateEvent(input.ID, u)
	if err != nil {
		return nil, eventOutput{}, fmt.Errorf("failed to update event: %w", err)
	}

	return nil, eventOutput{
		ID:      e.ID,
		Name:    e.Name,
		Type:    string(e.Type),
		Message: fmt.Sprintf("Updated event %q (ID: %d)", e.Name, e.ID),
	}, nil
}

func (s *Server) handleDeleteEvent(ctx context.Context, req *mcp.CallToolRequest, input deleteEventInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteEvent(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete event: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted event %d and all its values", input.ID),
	}, nil
}

func (s *Server) handleLogValue(ctx context.Context, req *mcp.CallToolRequest, input logValueInput) (*mcp.CallToolResult, simpleOutput, error) {
	date := input.Date
	if date == "" {
		date = models.Today()
	}

	v, err := s.repo.SetValue(input.EventID, date, input.Value)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log value: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %q for event %d on %s", v.Value, v.EventID, v.Date),
	}, nil
}

func (s *Server) handleValuesForDate(ctx context.Context, req *mcp.CallToolRequest, input valuesForDateInput) (*mcp.CallToolResult, any, error) {
	values, err := s.repo.ValuesForDate(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list values: %w", err)
	}

	if len(values) == 0 {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No values recorded on %s.", input.Date)}, nil
	}

	return nil, values, nil
}

func (s *Server) handleEventHistory(ctx context.Context, req *mcp.CallToolRequest, input eventHistoryInput) (*mcp.CallToolResult, any, error) {
	var dateRange *models.DateRange
	if input.Start != "" || input.End != "" {
		dateRange = &models.DateRange{Start: input.Start, End: input.End}
		if dateRange.End == "" {
			dateRange.End = models.Today()
		}
	}

	values, err := s.repo.ValuesForEvent(input.EventID, dateRange)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get history: %w", err)
	}

	if len(values) == 0 {
		return nil, map[string]interface{}{"message": "No values recorded for this event."}, nil
	}

	return nil, values, nil
}

func (s *Server) handleFirstMeaningfulDate(ctx context.Context, req *mcp.CallToolRequest, input firstMeaningfulDateInput) (*mcp.CallToolResult, simpleOutput, error) {
	events, err := s.repo.ListEvents()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to list events: %w", err)
	}
	values, err := s.repo.AllValues()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to list values: %w", err)
	}

	date, ok := analytics.FirstMeaningfulDate(events, values)
	if !ok {
		return nil, simpleOutput{Message: "No meaningful values recorded yet."}, nil
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("First meaningful date: %s", date),
	}, nil
}
