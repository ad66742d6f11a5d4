// Package retry runs an operation under a bounded exponential backoff.
// The benchmark uses it when dialing storage backends, so a briefly
// unavailable database does not kill a run before it starts.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/remind101/encbench/logger"
)

type BackOffOpts struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

var DefaultBackOffOpts = &BackOffOpts{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     3 * time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// RetryOnAnyError retries everything until the backoff gives up.
var RetryOnAnyError = func(error) bool { return true }

// Retrier retries an operation until it succeeds, the error is ruled
// non-retryable, or the backoff is exhausted.
type Retrier struct {
	Name        string
	backOffOpts *BackOffOpts
	shouldRetry func(error) bool
}

func NewRetrier(name string, backOffOpts *BackOffOpts, shouldRetry func(error) bool) *Retrier {
	if backOffOpts == nil {
		backOffOpts = DefaultBackOffOpts
	}
	return &Retrier{Name: name, backOffOpts: backOffOpts, shouldRetry: shouldRetry}
}

// Retry runs f, sleeping between attempts, and returns the last value and
// error once it stops.
func (r *Retrier) Retry(f func() (interface{}, error)) (interface{}, error) {
	b := r.newBackOff()
	b.Reset()

	numTries := 0
	for {
		numTries++
		val, err := f()
		if err == nil {
			return val, nil
		}

		if !r.shouldRetry(err) {
			return val, err
		}

		next := b.NextBackOff()
		if next == backoff.Stop {
			logger.Warn(context.Background(), "retrier gave up",
				"retrier", r.Name, "tries", numTries, "err", err)
			return val, err
		}

		logger.Debug(context.Background(), "retrying",
			"retrier", r.Name, "tries", numTries, "in", next, "err", err)
		time.Sleep(next)
	}
}

func (r *Retrier) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.backOffOpts.InitialInterval
	b.MaxInterval = r.backOffOpts.MaxInterval
	b.MaxElapsedTime = r.backOffOpts.MaxElapsedTime
	return b
}
