package dataerr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestUnavailableClassifies(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("yahoo fetch", cause)

	assert.Equal(t, true, errors.Is(err, ErrUpstreamUnavailable))
	assert.Equal(t, true, errors.Is(err, cause))
	assert.Equal(t, true, IsTransient(err))
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{
			name:      "success first try",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			errs:      []error{ErrUpstreamUnavailable, nil},
			wantCalls: 2,
		},
		{
			name:      "not found is not retried",
			errs:      []error{fmt.Errorf("yahoo: %w", ErrNotFound)},
			wantCalls: 1,
			wantErr:   ErrNotFound,
		},
		{
			name:      "gives up after attempts",
			errs:      []error{ErrUpstreamUnavailable, ErrUpstreamUnavailable, nil},
			wantCalls: 2,
			wantErr:   ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), 2, time.Millisecond, func(ctx context.Context) error {
				e := tt.errs[calls]
				calls++
				return e
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.Equal(t, nil, err)
			} else {
				assert.Equal(t, true, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 3, time.Hour, func(ctx context.Context) error {
		calls++
		return ErrUpstreamUnavailable
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, true, errors.Is(err, ErrUpstreamUnavailable))
}
