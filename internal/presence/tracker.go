// Package presence counts the visitors currently looking at the wall. Each
// client keeps one liveness record alive with periodic heartbeats; records
// quietly drop out of the count once the heartbeats stop, and a background
// sweeper garbage-collects them.
package presence

import (
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/wall-backend/internal/config"
)

// Tracker keeps the liveness records and fans the active count out to
// subscribers. Safe for concurrent use. Call Stop on shutdown to release the
// sweeper.
type Tracker struct {
	ttl, sweepInterval time.Duration
	log                *slog.Logger

	mu        sync.Mutex
	records   map[string]time.Time
	subs      map[int]chan int
	nextSub   int
	lastCount int
	stopped   bool

	stop     chan struct{}
	stopOnce sync.Once

	now func() time.Time // swapped out in tests
}

// NewTracker creates a Tracker and starts its sweeper.
func NewTracker(cfg config.PresenceConfig, logger *slog.Logger) *Tracker {
	t := &Tracker{
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		log:           logger.With("component", "presence"),
		records:       make(map[string]time.Time),
		subs:          make(map[int]chan int),
		stop:          make(chan struct{}),
		now:           time.Now,
	}
	go t.run()
	return t
}

// Register adds or refreshes the liveness record for a client key. One key
// is one counted visitor, no matter how many times it registers.
func (t *Tracker) Register(key string) {
	t.touch(key)
}

// Heartbeat refreshes a client's liveness record. A heartbeat for an expired
// or unknown key brings the client back into the count.
func (t *Tracker) Heartbeat(key string) {
	t.touch(key)
}

// Deregister removes a client's record immediately. Unknown keys are a
// no-op; the count never goes below zero.
func (t *Tracker) Deregister(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	delete(t.records, key)
	t.maybeNotifyLocked()
}

// Count returns the number of recently-active clients.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countLocked()
}

// Subscribe returns a channel that carries the current count and every later
// change, plus a cancel func. A slow subscriber only ever misses
// intermediate values: the channel always holds the latest count. The
// channel closes on cancel or Stop.
func (t *Tracker) Subscribe() (<-chan int, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan int, 1)
	if t.stopped {
		close(ch)
		return ch, func() {}
	}

	id := t.nextSub
	t.nextSub++
	ch <- t.countLocked()
	t.subs[id] = ch

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Stop shuts the sweeper down and closes all subscriber channels. Safe to
// call more than once; the tracker ignores registrations afterwards.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
		t.mu.Lock()
		defer t.mu.Unlock()
		t.stopped = true
		for id, ch := range t.subs {
			delete(t.subs, id)
			close(ch)
		}
	})
}

// ---------------------------------------------------------------------------
// internals
// ---------------------------------------------------------------------------

func (t *Tracker) touch(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.records[key] = t.now()
	t.maybeNotifyLocked()
}

// countLocked counts records whose last heartbeat is within the TTL. Stale
// records still in the map are invisible here; the sweeper only
// garbage-collects them.
func (t *Tracker) countLocked() int {
	cutoff := t.now().Add(-t.ttl)
	n := 0
	for _, ts := range t.records {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}

// maybeNotifyLocked pushes the count to subscribers when it moved since the
// last notification. Callers must hold mu.
func (t *Tracker) maybeNotifyLocked() {
	n := t.countLocked()
	if n == t.lastCount {
		return
	}
	t.lastCount = n

	t.log.Debug("active count changed", slog.Int("count", n))

	for _, ch := range t.subs {
		select {
		case ch <- n:
		default:
			// Subscriber has not drained the previous value; replace it so
			// the channel always carries the latest count.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}

func (t *Tracker) run() {
	ticker := time.NewTicker(t.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.sweep()
		}
	}
}

// sweep drops records whose TTL ran out and notifies subscribers if the
// count moved since the last notification.
func (t *Tracker) sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.ttl)
	removed := 0
	for key, ts := range t.records {
		if ts.Before(cutoff) {
			delete(t.records, key)
			removed++
		}
	}
	if removed > 0 {
		t.log.Debug("expired presence records swept", slog.Int("removed", removed))
	}
	t.maybeNotifyLocked()
}
