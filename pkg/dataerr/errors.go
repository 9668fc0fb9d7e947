package dataerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	ErrInvalidTicker       = errors.New("invalid ticker")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrEmptyResponse       = errors.New("empty response")
)

// Unavailable wraps a transport error so it classifies as ErrUpstreamUnavailable
// while keeping the original cause in the chain.
func Unavailable(source string, err error) error {
	return fmt.Errorf("%s: %w: %w", source, ErrUpstreamUnavailable, err)
}

// IsTransient reports whether err is worth another attempt.
func IsTransient(err error) bool {
	if errors.Is(err, ErrUpstreamUnavailable) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Retry runs fn up to attempts times, sleeping backoff, 2*backoff, ... between
// transient failures. Non-transient errors and context cancellation return immediately.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if err == nil || !IsTransient(err) {
			return err
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff * time.Duration(1<<i)):
		}
	}
	return err
}
