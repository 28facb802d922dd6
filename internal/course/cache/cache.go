// Package cache memoizes compiled course maps. The stateless classify
// surface accepts an inline course DOT per request, and recompiling the
// same course for every request is wasted work.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/graphacademy/journey/internal/course"
)

type InMemory struct {
	mu    sync.RWMutex
	max   int
	items map[string]*course.Course
}

func NewInMemory(max int) *InMemory {
	return &InMemory{
		max:   max,
		items: make(map[string]*course.Course, max),
	}
}

// GetOrCompute returns the cached compilation of dot, computing and
// storing it on a miss. Errors are never cached. When the cache is full
// new entries are computed but not stored.
func (c *InMemory) GetOrCompute(dot string, fn func() (*course.Course, error)) (*course.Course, error) {
	key := hash(dot)

	c.mu.RLock()
	if v, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items[key]; ok {
		return v, nil
	}

	compiled, err := fn()
	if err != nil {
		return nil, err
	}

	if len(c.items) < c.max {
		c.items[key] = compiled
	}

	return compiled, nil
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
