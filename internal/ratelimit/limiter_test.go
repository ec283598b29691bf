package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter
	require.NoError(t, l.Wait(context.Background()))
	assert.True(t, l.Allow())
	assert.Equal(t, "unlimited", l.Name())
}

func TestNewWithNonPositiveRateIsUnlimited(t *testing.T) {
	assert.Nil(t, New("catalog", 0))
	assert.Nil(t, NewWithBurst("catalog", -1, 5))
}

func TestBurstIsConsumed(t *testing.T) {
	l := NewWithBurst("catalog", 1, 2)
	require.NotNil(t, l)
	assert.Equal(t, "catalog", l.Name())

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestWaitHonoursCancelledContext(t *testing.T) {
	l := NewWithBurst("catalog", 1, 1)
	require.True(t, l.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for catalog")
}
