package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphacademy/journey/internal/app"
)

// eventsFile is the on-disk trace format:
//
//	events:
//	  - vertex: A
//	  - edge: e1
//	  - vertex: B
type eventsFile struct {
	Events []map[string]string `yaml:"events"`
}

func loadEvents(path string) ([]app.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	var f eventsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	if len(f.Events) == 0 {
		return nil, fmt.Errorf("events file %s has no events", path)
	}

	out := make([]app.Event, 0, len(f.Events))
	for i, entry := range f.Events {
		if len(entry) != 1 {
			return nil, fmt.Errorf("event %d: expected exactly one of vertex/edge, got %d keys", i, len(entry))
		}
		for kind, id := range entry {
			if kind != "vertex" && kind != "edge" {
				return nil, fmt.Errorf("event %d: unknown kind %q", i, kind)
			}
			if id == "" {
				return nil, fmt.Errorf("event %d: empty id", i)
			}
			out = append(out, app.Event{Kind: kind, ID: id})
		}
	}
	return out, nil
}
