package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"catering_manager/internal/metrics"

	"github.com/sirupsen/logrus"
)

// ErrUnexpected is what callers see when an action fails for a reason the
// user cannot act on.
var ErrUnexpected = errors.New("an error occurred")

// Busy runs user actions behind a simulated processing delay. Actions are
// serialized, so overlapping requests complete one after the other.
type Busy struct {
	mu       sync.Mutex
	delay    time.Duration
	inFlight int32
	log      *logrus.Entry
}

func NewBusy(delay time.Duration, logger *logrus.Logger) *Busy {
	return &Busy{delay: delay, log: componentLogger(logger, "busy")}
}

// Active reports whether an action is waiting or running.
func (b *Busy) Active() bool {
	return atomic.LoadInt32(&b.inFlight) > 0
}

func (b *Busy) Run(ctx context.Context, name string, action func(ctx context.Context) error) error {
	return b.RunWithDelay(ctx, name, b.delay, action)
}

// RunWithDelay waits for delay, then runs action. Validation and not-found
// errors are returned as is; anything else is logged and the typed error is
// kept so callers can map it, with panics reported as ErrUnexpected.
func (b *Busy) RunWithDelay(ctx context.Context, name string, delay time.Duration, action func(ctx context.Context) error) (err error) {
	atomic.AddInt32(&b.inFlight, 1)
	defer atomic.AddInt32(&b.inFlight, -1)

	start := time.Now()
	log := b.log.WithField("action", name)

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("action panicked")
			err = ErrUnexpected
		}
		metrics.RecordAction(name, time.Since(start), err == nil)
	}()

	err = action(ctx)
	switch {
	case err == nil, IsValidation(err), IsNotFound(err):
	default:
		log.WithError(err).Error("action failed")
	}
	return err
}
