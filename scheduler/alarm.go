package scheduler

import (
	"context"
	"time"
)

// Alarm fires once immediately and then every Period until its context ends.
type Alarm struct {
	Period time.Duration
}

// NewAlarm creates an alarm with the given period.
func NewAlarm(period time.Duration) *Alarm {
	return &Alarm{Period: period}
}

// Start returns a channel receiving the fire time of each tick. Ticks are
// dropped, not queued, while the receiver is busy. The channel is closed when
// ctx is done.
func (a *Alarm) Start(ctx context.Context) <-chan time.Time {
	fired := make(chan time.Time, 1)
	go func() {
		defer close(fired)

		fired <- time.Now()

		ticker := time.NewTicker(a.Period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				select {
				case fired <- t:
				default:
				}
			}
		}
	}()
	return fired
}
