// Package progress persists which missions each crosser has completed.
// The classification core never reads this state; it exists for the
// progression/UI layer and survives restarts when backed by Postgres.
package progress

import (
	"context"
	"sync"
)

// Store is the contract for completion-flag persistence.
type Store interface {
	MarkComplete(ctx context.Context, crosserID, missionID string) error
	IsComplete(ctx context.Context, crosserID, missionID string) (bool, error)
	Completed(ctx context.Context, crosserID string) ([]string, error)
}

// Memory is the in-process Store used by default and in tests.
type Memory struct {
	mu    sync.RWMutex
	flags map[string]map[string]bool
	order map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		flags: make(map[string]map[string]bool),
		order: make(map[string][]string),
	}
}

func (m *Memory) MarkComplete(ctx context.Context, crosserID, missionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.flags[crosserID] == nil {
		m.flags[crosserID] = make(map[string]bool)
	}
	if m.flags[crosserID][missionID] {
		return nil
	}
	m.flags[crosserID][missionID] = true
	m.order[crosserID] = append(m.order[crosserID], missionID)
	return nil
}

func (m *Memory) IsComplete(ctx context.Context, crosserID, missionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[crosserID][missionID], nil
}

func (m *Memory) Completed(ctx context.Context, crosserID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.order[crosserID]))
	copy(out, m.order[crosserID])
	return out, nil
}
