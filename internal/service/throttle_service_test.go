package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"authgate/internal/model"
)

func TestThrottle_AllowsBelowLimit(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	svc := NewThrottleService(ledger, 30*time.Minute, 10)

	for i := 0; i < 9; i++ {
		require.NoError(t, ledger.Record(context.Background(), "1.2.3.4"))
	}

	require.NoError(t, svc.Allow(context.Background(), "1.2.3.4"))
	// Allowing must not append anything itself.
	require.Len(t, ledger.entries, 9)
}

func TestThrottle_BlocksAtLimitAndRecordsPenalty(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	svc := NewThrottleService(ledger, 30*time.Minute, 10)

	for i := 0; i < 10; i++ {
		require.NoError(t, ledger.Record(context.Background(), "1.2.3.4"))
	}

	err := svc.Allow(context.Background(), "1.2.3.4")
	require.ErrorIs(t, err, model.ErrTooManyAttempts)
	// The blocked attempt itself counts, keeping the lockout alive.
	require.Len(t, ledger.entries, 11)

	// A different address is unaffected.
	require.NoError(t, svc.Allow(context.Background(), "5.6.7.8"))
}

func TestThrottle_OldEntriesAgeOutOfWindow(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	stale := time.Now().UTC().Add(-31 * time.Minute)
	for i := 0; i < 10; i++ {
		ledger.entries = append(ledger.entries, model.FailedLogin{Address: "1.2.3.4", OccurredAt: stale})
	}

	svc := NewThrottleService(ledger, 30*time.Minute, 10)
	require.NoError(t, svc.Allow(context.Background(), "1.2.3.4"))
}

func TestThrottle_CountFailureFailsOpen(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{countErr: errors.New("ledger down")}
	svc := NewThrottleService(ledger, 30*time.Minute, 10)

	require.NoError(t, svc.Allow(context.Background(), "1.2.3.4"))
}

func TestNewThrottleService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewThrottleService(&fakeLedger{}, 0, 0)
	require.Equal(t, 30*time.Minute, svc.window)
	require.Equal(t, 10, svc.maxFailures)
}
