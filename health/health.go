package health

import (
	"context"
	"fmt"
	"time"
)

// Status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// DefaultTimeout bounds a check when ctx has no deadline.
const DefaultTimeout = 5 * time.Second

// Status is the health state of one dependency or of a whole connection.
type Status struct {
	// Status is one of the Status* constants
	Status string `json:"status"`

	// Message is a human-readable description
	Message string `json:"message,omitempty"`

	// Details carries diagnostic values such as the error or latency
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy reports whether the status is StatusHealthy.
func (s Status) IsHealthy() bool { return s.Status == StatusHealthy }

// IsDegraded reports whether the status is StatusDegraded.
func (s Status) IsDegraded() bool { return s.Status == StatusDegraded }

// IsUnhealthy reports whether the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool { return s.Status == StatusUnhealthy }

// Healthy returns a healthy status.
func Healthy(message string) Status {
	return Status{Status: StatusHealthy, Message: message}
}

// Degraded returns a degraded status.
func Degraded(message string, details map[string]any) Status {
	return Status{Status: StatusDegraded, Message: message, Details: details}
}

// Unhealthy returns an unhealthy status.
func Unhealthy(message string, details map[string]any) Status {
	return Status{Status: StatusUnhealthy, Message: message, Details: details}
}

// Pinger is anything that can verify its own connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// DatabaseCheck pings the database. Failure is unhealthy.
func DatabaseCheck(ctx context.Context, name string, p Pinger) Status {
	return check(ctx, name, p, Unhealthy)
}

// JournalCheck pings a statement journal. Failure is degraded.
func JournalCheck(ctx context.Context, name string, p Pinger) Status {
	return check(ctx, name, p, Degraded)
}

func check(ctx context.Context, name string, p Pinger, failed func(string, map[string]any) Status) Status {
	if p == nil {
		return failed(fmt.Sprintf("%s is not configured", name), map[string]any{"check": name})
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		return failed(fmt.Sprintf("%s is unreachable", name), map[string]any{
			"check":      name,
			"error":      err.Error(),
			"latency_ms": latency.Milliseconds(),
		})
	}
	s := Healthy(fmt.Sprintf("%s is reachable", name))
	s.Details = map[string]any{"check": name, "latency_ms": latency.Milliseconds()}
	return s
}

// Combine aggregates statuses into one.
func Combine(checks ...Status) Status {
	if len(checks) == 0 {
		return Healthy("no checks provided")
	}

	var unhealthy, degraded []string
	var healthy int
	for _, c := range checks {
		msg := c.Message
		if msg == "" {
			msg = "unnamed check"
		}
		switch c.Status {
		case StatusUnhealthy:
			unhealthy = append(unhealthy, msg)
		case StatusDegraded:
			degraded = append(degraded, msg)
		case StatusHealthy:
			healthy++
		}
	}

	if len(unhealthy) > 0 {
		return Unhealthy(fmt.Sprintf("%d check(s) failed", len(unhealthy)), map[string]any{
			"total":         len(checks),
			"unhealthy":     len(unhealthy),
			"degraded":      len(degraded),
			"healthy":       healthy,
			"failed_checks": unhealthy,
		})
	}
	if len(degraded) > 0 {
		return Degraded(fmt.Sprintf("%d check(s) degraded", len(degraded)), map[string]any{
			"total":           len(checks),
			"degraded":        len(degraded),
			"healthy":         healthy,
			"degraded_checks": degraded,
		})
	}
	return Healthy(fmt.Sprintf("all %d check(s) passed", len(checks)))
}
