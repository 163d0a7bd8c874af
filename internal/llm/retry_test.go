package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	p := RetryPolicy{Retries: 3, InitialDelay: time.Millisecond}

	v, err := Retry(context.Background(), p, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	p := RetryPolicy{Retries: 3, InitialDelay: time.Millisecond}

	_, err := Retry(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, ErrInvalidOutput
	})

	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 4, calls)
}

func TestRetry_DelayDoubles(t *testing.T) {
	var stamps []time.Time
	p := RetryPolicy{Retries: 2, InitialDelay: 20 * time.Millisecond}

	_, _ = Retry(context.Background(), p, func(context.Context) (int, error) {
		stamps = append(stamps, time.Now())
		return 0, errors.New("fail")
	})

	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 40*time.Millisecond)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := RetryPolicy{Retries: 5, InitialDelay: time.Hour}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := Retry(ctx, p, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetry_DisabledIsNotRetried(t *testing.T) {
	calls := 0
	p := RetryPolicy{Retries: 3, InitialDelay: time.Hour}

	start := time.Now()
	_, err := Retry(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, ErrDisabled
	})

	assert.ErrorIs(t, err, ErrDisabled)
	assert.NotErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}
