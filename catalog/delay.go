package catalog

import (
	"context"
	"time"
)

// Delayer paces consecutive lookups.
type Delayer interface {
	Wait(ctx context.Context) error
}

// SleepDelay pauses for a fixed duration after every lookup.
type SleepDelay struct {
	Duration time.Duration
}

// Wait blocks for the configured duration or until ctx is done.
func (d SleepDelay) Wait(ctx context.Context) error {
	if d.Duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay never waits.
type NoDelay struct{}

// Wait returns immediately.
func (NoDelay) Wait(context.Context) error {
	return nil
}
