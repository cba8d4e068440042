package service

import (
	"context"
	"log/slog"
	"time"

	"authgate/internal/model"
)

// ThrottleService decides whether a login attempt from an address may proceed,
// based on how many ledger entries the address accrued inside the trailing
// window. There is no unblock event: the lockout decays only as entries age
// out of the window. Blocked attempts themselves append a penalty entry, so a
// hammering client keeps its own lockout alive.
//
// The count and the eventual record are separate store calls; concurrent
// attempts from one address can transiently push the stored count past the
// limit. That weak consistency is accepted.
type ThrottleService struct {
	ledger      failedLoginLedger
	window      time.Duration
	maxFailures int
}

func NewThrottleService(ledger failedLoginLedger, window time.Duration, maxFailures int) *ThrottleService {
	if window <= 0 {
		window = 30 * time.Minute
	}
	if maxFailures <= 0 {
		maxFailures = 10
	}

	return &ThrottleService{ledger: ledger, window: window, maxFailures: maxFailures}
}

// Allow returns model.ErrTooManyAttempts when the address is over the limit.
// It must run before any credential verification for the attempt.
func (s *ThrottleService) Allow(ctx context.Context, address string) error {
	since := time.Now().UTC().Add(-s.window)
	count, err := s.ledger.CountSince(ctx, address, since)
	if err != nil {
		// A ledger read failure must not lock every client out; let the
		// attempt through and leave the decision to credential checks.
		slog.Warn("failed to count recent login failures", "address", address, "error", err)
		return nil
	}

	if count >= s.maxFailures {
		if err := s.ledger.Record(ctx, address); err != nil {
			slog.Error("failed to record throttled attempt", "address", address, "error", err)
		}
		return model.ErrTooManyAttempts
	}

	return nil
}
