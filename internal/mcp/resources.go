// ABOUTME: MCP resource implementations for the daytrack event store.
// ABOUTME: Provides daytrack://today and daytrack://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"daytrack/internal/analytics"
	"daytrack/internal/models"
)

func (s *Server) registerResources() {
	// daytrack://today - all values recorded for today's date
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "daytrack://today",
		Name:        "Today's Values",
		Description: "All event values recorded for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// daytrack://summary - events with latest values and first meaningful date
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "daytrack://summary",
		Name:        "Tracking Summary",
		Description: "Every event with its most recent value, plus the first meaningful date",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.Today()

	values, err := s.repo.ValuesForDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}

	events, err := s.repo.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	names := make(map[int64]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	entries := make([]map[string]interface{}, 0, len(values))
	for _, v := range values {
		entries = append(entries, map[string]interface{}{
			"event_id": v.EventID,
			"event":    names[v.EventID],
			"value":    v.Value,
		})
	}

	result := map[string]interface{}{
		"date":   today,
		"values": entries,
		"count":  len(entries),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "daytrack://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	events, err := s.repo.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	allValues, err := s.repo.AllValues()
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}

	// Latest value per event (values per event are loaded date-ascending)
	summaries := make([]map[string]interface{}, 0, len(events))
	for _, e := range events {
		history, err := s.repo.ValuesForEvent(e.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get history for event %d: %w", e.ID, err)
		}

		entry := map[string]interface{}{
			"id":    e.ID,
			"name":  e.Name,
			"type":  e.Type,
			"count": len(history),
		}
		if len(history) > 0 {
			last := history[len(history)-1]
			entry["latest_date"] = last.Date
			entry["latest_value"] = last.Value
		}
		summaries = append(summaries, entry)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"events":       summaries,
		"total_values": len(allValues),
	}
	if date, ok := analytics.FirstMeaningfulDate(events, allValues); ok {
		result["first_meaningful_date"] = date
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "daytrack://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
