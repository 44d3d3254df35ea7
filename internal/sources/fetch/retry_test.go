package fetch

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryPolicy_Backoff(t *testing.T) {
	p := DefaultRetryPolicy()

	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 4*time.Second, p.Backoff(1)) // 1s clamped up
	assert.Equal(t, 4*time.Second, p.Backoff(2)) // 2s clamped up
	assert.Equal(t, 4*time.Second, p.Backoff(3))
	assert.Equal(t, 8*time.Second, p.Backoff(4))
	assert.Equal(t, 10*time.Second, p.Backoff(5)) // 16s clamped down
	assert.Equal(t, 4*time.Second, p.Backoff(0))
}

func TestRetryPolicy_Do_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	attempts, err := NoBackoff().Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_Do_ExhaustsBudget(t *testing.T) {
	calls := 0
	attempts, err := NoBackoff().Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("timeout")
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_Do_PermanentStopsEarly(t *testing.T) {
	calls := 0
	attempts, err := NoBackoff().Do(context.Background(), func(context.Context) error {
		calls++
		return &StatusError{StatusCode: http.StatusNotFound, URL: "https://x"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Do_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{MaxAttempts: 3, MinBackoff: time.Hour}

	calls := 0
	_, err := p.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Do_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := RetryPolicy{}.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestStatusError_Permanent(t *testing.T) {
	tests := []struct {
		status    int
		permanent bool
	}{
		{http.StatusInternalServerError, false},
		{http.StatusBadGateway, false},
		{http.StatusTooManyRequests, false},
		{http.StatusRequestTimeout, false},
		{http.StatusNotFound, true},
		{http.StatusForbidden, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := &StatusError{StatusCode: tt.status}
			assert.Equal(t, tt.permanent, err.Permanent())
		})
	}
}
