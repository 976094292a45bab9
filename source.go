package server

import (
	"context"
	"fmt"
	"os"

	"github.com/scoutingnl/opkomst-ical/feed"
	"gopkg.in/yaml.v3"
)

// EventSource provides the events of the feed.
type EventSource interface {
	Events(ctx context.Context) ([]feed.Event, error)
}

// FileSource reads events from a YAML or JSON list on every call. Records
// that cannot be decoded are logged and skipped.
type FileSource struct {
	Path string
}

func (f FileSource) Events(ctx context.Context) ([]feed.Event, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading events: %w", err)
	}

	var records []yaml.Node
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}

	events := make([]feed.Event, 0, len(records))
	for i, record := range records {
		var event feed.Event
		if err := record.Decode(&event); err != nil {
			log(ctx).Warnf("Skipping event record %d: %s", i, err)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (s *Server) getEvents(ctx context.Context) ([]feed.Event, error) {
	events, err := s.source.Events(ctx)
	if err != nil {
		return nil, sourceError{err: err}
	}

	return events, nil
}
