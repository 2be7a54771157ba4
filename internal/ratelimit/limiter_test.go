package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(max int, window time.Duration, burst int) (*service, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(max, window, burst).(*service)
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestCheckWindowBoundary(t *testing.T) {
	svc, current := newTestLimiter(10, time.Minute, 0)
	ctx := context.Background()

	// Exactly 10 requests in the window succeed.
	for i := 0; i < 10; i++ {
		status := svc.Check(ctx, "user-1", ActionOpenPack)
		require.False(t, status.IsBlocked, "request %d", i+1)
		assert.Equal(t, 9-i, status.Remaining)
	}

	// The 11th is blocked with retry timing until window reset.
	status := svc.Check(ctx, "user-1", ActionOpenPack)
	require.True(t, status.IsBlocked)
	assert.Equal(t, 0, status.Remaining)
	assert.Equal(t, 60, status.RetryAfterSeconds)

	// After the window elapses the counter is back to full.
	*current = current.Add(time.Minute + time.Second)
	status = svc.Check(ctx, "user-1", ActionOpenPack)
	assert.False(t, status.IsBlocked)
	assert.Equal(t, 9, status.Remaining)
}

func TestCheckBlockedRequestsDoNotConsumeSlots(t *testing.T) {
	svc, current := newTestLimiter(2, time.Minute, 0)
	ctx := context.Background()

	svc.Check(ctx, "user-1", ActionOpenPack)
	svc.Check(ctx, "user-1", ActionOpenPack)
	for i := 0; i < 5; i++ {
		require.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
	}

	// Only the two admitted requests age out; being blocked five times did
	// not extend the penalty.
	*current = current.Add(61 * time.Second)
	assert.False(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
}

func TestCheckBurstAllowance(t *testing.T) {
	svc, _ := newTestLimiter(10, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		status := svc.Check(ctx, "user-1", ActionOpenPack)
		require.False(t, status.IsBlocked)
		assert.False(t, status.BurstUsed)
	}

	// Requests 11-13 ride the burst allowance and are flagged.
	for i := 0; i < 3; i++ {
		status := svc.Check(ctx, "user-1", ActionOpenPack)
		require.False(t, status.IsBlocked, "burst request %d", i+1)
		assert.True(t, status.BurstUsed)
	}

	// The 14th exceeds the hard cap.
	assert.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
}

func TestCheckKeysAndActionsAreIndependent(t *testing.T) {
	svc, _ := newTestLimiter(1, time.Minute, 0)
	ctx := context.Background()

	require.False(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
	assert.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)

	// Different key, different action: both unaffected.
	assert.False(t, svc.Check(ctx, "user-2", ActionOpenPack).IsBlocked)
	assert.False(t, svc.Check(ctx, "user-1", ActionVerifyPack).IsBlocked)
}

func TestCheckSlidingWindowIsNotFixed(t *testing.T) {
	svc, current := newTestLimiter(2, time.Minute, 0)
	ctx := context.Background()

	svc.Check(ctx, "user-1", ActionOpenPack)
	*current = current.Add(40 * time.Second)
	svc.Check(ctx, "user-1", ActionOpenPack)

	// 50s in: the first request is still inside the window.
	*current = current.Add(10 * time.Second)
	require.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)

	// 61s in: the first request slid out, one slot is free again.
	*current = current.Add(11 * time.Second)
	assert.False(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
}

func TestCheckActionMaxOverride(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(2, time.Minute, 0, WithActionMax(ActionVerifyPack, 5)).(*service)
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	// The default cap still governs opens.
	svc.Check(ctx, "user-1", ActionOpenPack)
	svc.Check(ctx, "user-1", ActionOpenPack)
	require.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)

	// Verifies run against their own, larger cap.
	for i := 0; i < 5; i++ {
		require.False(t, svc.Check(ctx, "user-1", ActionVerifyPack).IsBlocked, "verify %d", i+1)
	}
	assert.True(t, svc.Check(ctx, "user-1", ActionVerifyPack).IsBlocked)
}

func TestReset(t *testing.T) {
	svc, _ := newTestLimiter(1, time.Minute, 0)
	ctx := context.Background()

	svc.Check(ctx, "user-1", ActionOpenPack)
	require.True(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)

	svc.Reset("user-1", ActionOpenPack)
	assert.False(t, svc.Check(ctx, "user-1", ActionOpenPack).IsBlocked)
}
