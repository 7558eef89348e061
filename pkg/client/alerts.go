package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultAlertTimeout = 5 * time.Second

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

type Alert struct {
	ID        uuid.UUID
	Msg       string
	Severity  Severity
	CreatedAt time.Time
}

// AlertQueue holds transient user facing notifications. Each alert is
// removed by its own timer exactly once its timeout elapses; there is
// no cancellation path, the lifecycle is purely time driven.
type AlertQueue struct {
	mu     sync.Mutex
	alerts []Alert

	timeout time.Duration
}

func NewAlertQueue() *AlertQueue {
	return &AlertQueue{timeout: DefaultAlertTimeout}
}

// NewAlertQueueWithTimeout overrides the default expiry, used by tests
// and callers wanting snappier notifications.
func NewAlertQueueWithTimeout(timeout time.Duration) *AlertQueue {
	return &AlertQueue{timeout: timeout}
}

// Push appends an alert with the queue's default timeout.
func (q *AlertQueue) Push(msg string, severity Severity) uuid.UUID {
	return q.PushWithTimeout(msg, severity, q.timeout)
}

// PushWithTimeout appends an alert and schedules its removal. The
// scheduled removal targets exactly the returned id, independent of
// whatever else is in the queue when it fires.
func (q *AlertQueue) PushWithTimeout(msg string, severity Severity, timeout time.Duration) uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.New()
	q.alerts = append(q.alerts, Alert{ID: id, Msg: msg, Severity: severity, CreatedAt: time.Now()})
	time.AfterFunc(timeout, func() { q.remove(id) })
	return id
}

func (q *AlertQueue) remove(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.alerts {
		if a.ID == id {
			q.alerts = append(q.alerts[:i], q.alerts[i+1:]...)
			return
		}
	}
}

// Alerts returns a copy of the live alerts in push order.
func (q *AlertQueue) Alerts() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Alert, len(q.alerts))
	copy(out, q.alerts)
	return out
}
