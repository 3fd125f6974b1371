package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "rentfleet/internal/app/outbox"
)

type outboxEntry struct {
	record      appoutbox.EventRecord
	sent        bool
	claimed     bool
	attempts    int
	nextAttempt time.Time
}

// Outbox is an in-memory event store with the same claim/ack protocol the
// mongo-backed store speaks, so the worker is storage-agnostic.
type Outbox struct {
	mu      sync.Mutex
	entries []*outboxEntry
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, &outboxEntry{record: record, nextAttempt: time.Now().UTC()})
	return nil
}

// Claim hands out the oldest unsent record that is due for an attempt.
func (o *Outbox) Claim(ctx context.Context, workerID string) (*appoutbox.EventRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now().UTC()
	for _, e := range o.entries {
		if e.sent || e.claimed || e.nextAttempt.After(now) {
			continue
		}
		e.claimed = true
		rec := e.record
		return &rec, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.entries {
		if e.record.ID == id {
			e.sent = true
			e.claimed = false
		}
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.entries {
		if e.record.ID == id {
			e.claimed = false
			e.attempts++
			e.nextAttempt = next
		}
	}
	return nil
}

// Pending counts records not yet published; used by tests and readiness.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.entries {
		if !e.sent {
			n++
		}
	}
	return n
}
