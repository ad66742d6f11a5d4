package retry

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func fastOpts() *BackOffOpts {
	return &BackOffOpts{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	r := NewRetrier("test", fastOpts(), RetryOnAnyError)

	calls := 0
	val, err := r.Retry(func() (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := val.(string), "ok"; got != want {
		t.Fatalf("Retry => %q; want %q", got, want)
	}
	if got, want := calls, 3; got != want {
		t.Fatalf("calls => %d; want %d", got, want)
	}
}

func TestRetryGivesUp(t *testing.T) {
	r := NewRetrier("test", fastOpts(), RetryOnAnyError)

	boom := errors.New("persistent")
	_, err := r.Retry(func() (interface{}, error) { return nil, boom })
	if err != boom {
		t.Fatalf("Retry => %v; want %v", err, boom)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	r := NewRetrier("test", fastOpts(), func(error) bool { return false })

	calls := 0
	_, err := r.Retry(func() (interface{}, error) {
		calls++
		return nil, errors.New("fatal")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := calls, 1; got != want {
		t.Fatalf("calls => %d; want %d", got, want)
	}
}
