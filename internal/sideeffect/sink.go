package sideeffect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/logger"

	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// Sink receives best-effort side effects. Implementations never return errors to
// the caller; failures are logged and dropped.
type Sink interface {
	Audit(ctx context.Context, entry domain.AuditLog)
	Notify(ctx context.Context, n domain.Notification)
}

// Store persists side effects.
type Store interface {
	InsertAudit(ctx context.Context, entry *domain.AuditLog) error
	InsertNotification(ctx context.Context, n *domain.Notification) error
}

type job struct {
	audit *domain.AuditLog
	note  *domain.Notification
	log   *logrus.Entry
}

func newJob(ctx context.Context, audit *domain.AuditLog, note *domain.Notification) job {
	now := time.Now().UTC()
	if audit != nil {
		audit.RequestID = logger.RequestIDFromContext(ctx)
		if audit.CreatedAt.IsZero() {
			audit.CreatedAt = now
		}
	}
	if note != nil && note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	return job{audit: audit, note: note, log: logger.FromContext(ctx)}
}

func (j job) run(ctx context.Context, store Store) {
	defer func() {
		if r := recover(); r != nil {
			j.log.WithField("panic", fmt.Sprint(r)).Error("side effect panicked")
		}
	}()
	switch {
	case j.audit != nil:
		if err := store.InsertAudit(ctx, j.audit); err != nil {
			j.log.WithError(err).WithFields(logrus.Fields{
				"action":   j.audit.Action,
				"resource": j.audit.ResourceType,
			}).Warn("audit write failed")
		}
	case j.note != nil:
		if err := store.InsertNotification(ctx, j.note); err != nil {
			j.log.WithError(err).WithField("user_id", j.note.UserID).Warn("notification write failed")
		}
	}
}

// Dispatcher hands side effects to a single background worker through a bounded
// queue. A full queue drops the entry.
type Dispatcher struct {
	store Store
	queue chan job
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(store Store, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &Dispatcher{
		store: store,
		queue: make(chan job, buffer),
		done:  make(chan struct{}),
	}
	go d.work()
	return d
}

func (d *Dispatcher) work() {
	defer close(d.done)
	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		j.run(ctx, d.store)
		cancel()
	}
}

func (d *Dispatcher) Audit(ctx context.Context, entry domain.AuditLog) {
	d.enqueue(newJob(ctx, &entry, nil))
}

func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	d.enqueue(newJob(ctx, nil, &n))
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		j.log.Warn("side effect dropped: dispatcher closed")
		return
	}
	select {
	case d.queue <- j:
	default:
		j.log.Warn("side effect dropped: queue full")
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inline writes side effects synchronously on the caller's goroutine.
type Inline struct {
	Store Store
}

func (s Inline) Audit(ctx context.Context, entry domain.AuditLog) {
	newJob(ctx, &entry, nil).run(ctx, s.Store)
}

func (s Inline) Notify(ctx context.Context, n domain.Notification) {
	newJob(ctx, nil, &n).run(ctx, s.Store)
}

// Discard drops everything.
type Discard struct{}

func (Discard) Audit(context.Context, domain.AuditLog)       {}
func (Discard) Notify(context.Context, domain.Notification) {}
