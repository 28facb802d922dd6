package app

import (
	"sync"
	"sync/atomic"

	"github.com/graphacademy/journey/internal/journey"
	"github.com/graphacademy/journey/internal/mission"
)

// AsyncListener decouples a slow Listener (a database-backed progression
// tracker, a remote notifier) from the synchronous event path. Events are
// forwarded on a dedicated goroutine; when the buffer is full the event is
// dropped and counted rather than blocking a step event.
type AsyncListener struct {
	next    Listener
	events  chan listenerEvent
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type listenerEvent struct {
	completed bool
	crosserID string
	previous  journey.Type
	current   journey.Type
	spec      mission.Spec
	result    journey.Type
	length    int
}

func NewAsyncListener(next Listener, buffer int) *AsyncListener {
	if buffer <= 0 {
		buffer = 1
	}

	l := &AsyncListener{
		next:   next,
		events: make(chan listenerEvent, buffer),
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for ev := range l.events {
			if l.next == nil {
				continue
			}
			if ev.completed {
				l.next.MissionCompleted(ev.crosserID, ev.spec, ev.result, ev.length)
				continue
			}
			l.next.JourneyTypeChanged(ev.crosserID, ev.previous, ev.current)
		}
	}()

	return l
}

func (l *AsyncListener) JourneyTypeChanged(crosserID string, previous, current journey.Type) {
	l.enqueue(listenerEvent{crosserID: crosserID, previous: previous, current: current})
}

func (l *AsyncListener) MissionCompleted(crosserID string, spec mission.Spec, result journey.Type, length int) {
	l.enqueue(listenerEvent{completed: true, crosserID: crosserID, spec: spec, result: result, length: length})
}

func (l *AsyncListener) enqueue(ev listenerEvent) {
	if l == nil {
		return
	}
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		l.dropped.Add(1)
		return
	}
	select {
	case l.events <- ev:
	default:
		l.dropped.Add(1)
	}
	l.mu.RUnlock()
}

// Dropped reports how many events were discarded.
func (l *AsyncListener) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close stops forwarding after draining buffered events.
func (l *AsyncListener) Close() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.events)
		l.mu.Unlock()
		l.wg.Wait()
	})
}
