package regression

import (
	"sync"
	"time"

	"moltbench/domain/bench"
	"moltbench/domain/core"
)

const (
	// AlertLogCapacity bounds the retained alert history
	AlertLogCapacity = 100
	// ActiveAlertWindow is how long an alert counts as active
	ActiveAlertWindow = time.Hour
)

// AlertLog is the bounded FIFO history of regression alerts. Alerts are
// appended by the detector and never mutated or deleted individually;
// the oldest fall off past capacity.
type AlertLog struct {
	mu       sync.RWMutex
	alerts   []bench.RegressionAlert
	capacity int
}

// NewAlertLog creates an alert log with the given capacity
// (AlertLogCapacity when <= 0).
func NewAlertLog(capacity int) *AlertLog {
	if capacity <= 0 {
		capacity = AlertLogCapacity
	}
	return &AlertLog{
		alerts:   make([]bench.RegressionAlert, 0, capacity),
		capacity: capacity,
	}
}

// Append records an alert, evicting the oldest past capacity
func (l *AlertLog) Append(a bench.RegressionAlert) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.alerts = append(l.alerts, a)
	if len(l.alerts) > l.capacity {
		l.alerts = l.alerts[len(l.alerts)-l.capacity:]
	}
}

// Active returns alerts raised within ActiveAlertWindow of now,
// newest-first.
func (l *AlertLog) Active(now core.Timestamp) []bench.RegressionAlert {
	cutoff := now.Time().Add(-ActiveAlertWindow)

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]bench.RegressionAlert, 0)
	for i := len(l.alerts) - 1; i >= 0; i-- {
		if l.alerts[i].Timestamp.Time().Before(cutoff) {
			break
		}
		out = append(out, l.alerts[i])
	}
	return out
}

// History returns retained alerts newest-first, truncated to limit when > 0
func (l *AlertLog) History(limit int) []bench.RegressionAlert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]bench.RegressionAlert, 0, len(l.alerts))
	for i := len(l.alerts) - 1; i >= 0; i-- {
		out = append(out, l.alerts[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Len returns the number of retained alerts
func (l *AlertLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.alerts)
}

// Capacity returns the retention bound
func (l *AlertLog) Capacity() int {
	return l.capacity
}
