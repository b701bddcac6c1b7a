package session

import (
	"context"
	"time"
)

// Runner drives a session's Tick on a fixed one-second cadence. It stops the
// instant the session leaves InProgress, or when its context is cancelled
// (abandonment), whichever comes first.
type Runner struct {
	session  *Session
	interval time.Duration
}

func NewRunner(s *Session) *Runner {
	return &Runner{session: s, interval: time.Second}
}

// Run blocks until the session stops being InProgress or ctx is cancelled.
// Intended to be launched on its own goroutine after Start.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.session.Tick()
			if r.session.State() != StateInProgress {
				return
			}
		}
	}
}
