package outbox

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "rentfleet/internal/app/outbox"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// Store is the claim/ack protocol the worker drains events through. A claimed
// record belongs to this worker until it is marked sent or failed.
type Store interface {
	Claim(ctx context.Context, workerID string) (*appoutbox.EventRecord, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker polls the store and relays pending domain events to the broker.
// Records are keyed by aggregate id so consumers see per-aggregate order.
type Worker struct {
	Store       Store
	Producer    Producer
	Log         *slog.Logger
	Interval    time.Duration
	Retry       time.Duration
	TopicPrefix string
	ID          string
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain relays claimed records until the store runs dry or an attempt fails,
// so one tick can flush a burst without waiting out the poll interval.
func (w *Worker) drain(ctx context.Context) {
	for {
		record, err := w.Store.Claim(ctx, w.workerID())
		if err != nil {
			w.log().ErrorContext(ctx, "outbox claim failed", "error", err)
			return
		}
		if record == nil {
			return
		}
		if !w.relay(ctx, record) {
			return
		}
	}
}

func (w *Worker) relay(ctx context.Context, record *appoutbox.EventRecord) bool {
	topic := w.topicFor(record.Name)
	if err := w.Producer.Publish(ctx, topic, record.Aggregate, record.Payload, record.Headers); err != nil {
		w.log().WarnContext(ctx, "outbox publish failed",
			"event", record.Name,
			"topic", topic,
			"error", err,
		)
		_ = w.Store.MarkFailed(ctx, record.ID, time.Now().Add(w.retry()), err.Error())
		return false
	}
	if err := w.Store.MarkSent(ctx, record.ID); err != nil {
		w.log().ErrorContext(ctx, "outbox ack failed", "event", record.Name, "error", err)
		return false
	}
	w.log().DebugContext(ctx, "outbox event relayed", "event", record.Name, "topic", topic)
	return true
}

// topicFor maps event names like "reservation.requested" onto a per-context
// topic such as "reservation.events.v1".
func (w *Worker) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if w.TopicPrefix != "" {
		topic = w.TopicPrefix + topic
	}
	return topic
}

func (w *Worker) workerID() string {
	if w.ID != "" {
		return w.ID
	}
	w.ID = uuid.NewString()
	return w.ID
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) retry() time.Duration {
	if w.Retry <= 0 {
		return 5 * time.Second
	}
	return w.Retry
}

func (w *Worker) log() *slog.Logger {
	if w.Log == nil {
		return slog.Default()
	}
	return w.Log
}
