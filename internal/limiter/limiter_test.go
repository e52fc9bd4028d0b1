package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(maxAttempts int, window time.Duration) (*MemoryLimiter, *time.Time) {
	l := NewMemoryLimiter(maxAttempts, window, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestMemoryLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(5, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.CheckAndIncrement(ctx, "user@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i+1)
	}

	ok, err := l.CheckAndIncrement(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "6th attempt must be denied")
}

func TestMemoryLimiter_DenialDoesNotIncrement(t *testing.T) {
	l, _ := newTestLimiter(2, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := l.CheckAndIncrement(ctx, "a@b.c")
		require.True(t, ok)
	}
	// отказов может быть сколько угодно, счётчик не растёт
	for i := 0; i < 10; i++ {
		ok, _ := l.CheckAndIncrement(ctx, "a@b.c")
		require.False(t, ok)
	}
	l.mu.Lock()
	count := l.entries["a@b.c"].count
	l.mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestMemoryLimiter_WindowExpiryStartsFresh(t *testing.T) {
	l, now := newTestLimiter(5, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		l.CheckAndIncrement(ctx, "user@example.com")
	}
	ok, _ := l.CheckAndIncrement(ctx, "user@example.com")
	require.False(t, ok)

	*now = now.Add(31 * time.Minute)

	ok, err := l.CheckAndIncrement(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "new window must allow again")

	l.mu.Lock()
	e := l.entries["user@example.com"]
	l.mu.Unlock()
	assert.Equal(t, 1, e.count, "triggering call counts as the first of the new window")
}

func TestMemoryLimiter_ResetClearsCounter(t *testing.T) {
	l, _ := newTestLimiter(2, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	l.CheckAndIncrement(ctx, "user@example.com")
	l.CheckAndIncrement(ctx, "user@example.com")
	ok, _ := l.CheckAndIncrement(ctx, "user@example.com")
	require.False(t, ok)

	require.NoError(t, l.Reset(ctx, "user@example.com"))

	ok, _ = l.CheckAndIncrement(ctx, "user@example.com")
	assert.True(t, ok)
}

func TestMemoryLimiter_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	ok, _ := l.CheckAndIncrement(ctx, "first@example.com")
	require.True(t, ok)
	ok, _ = l.CheckAndIncrement(ctx, "first@example.com")
	require.False(t, ok)

	ok, _ = l.CheckAndIncrement(ctx, "second@example.com")
	assert.True(t, ok)
}

func TestMemoryLimiter_SweepRemovesStaleEntries(t *testing.T) {
	l, now := newTestLimiter(5, 30*time.Minute)
	defer l.Stop()
	ctx := context.Background()

	l.CheckAndIncrement(ctx, "old@example.com")
	*now = now.Add(10 * time.Minute)
	l.CheckAndIncrement(ctx, "fresh@example.com")

	*now = now.Add(25 * time.Minute) // old: 35 мин, fresh: 25 мин
	l.sweep()

	l.mu.Lock()
	_, oldKept := l.entries["old@example.com"]
	_, freshKept := l.entries["fresh@example.com"]
	l.mu.Unlock()
	assert.False(t, oldKept)
	assert.True(t, freshKept)
}

func TestMemoryLimiter_StopIsIdempotent(t *testing.T) {
	l, _ := newTestLimiter(5, 30*time.Minute)
	l.Stop()
	l.Stop()
}
