package middleware

import (
	"context"
	"errors"
	"net/http"

	"authgate/internal/model"
	"authgate/pkg/apierror"
)

// loginGate is satisfied by service.ThrottleService.
type loginGate interface {
	Allow(ctx context.Context, address string) error
}

// ThrottleMiddleware runs the failed-login gate in front of the login handler,
// so an over-limit address is rejected before any credential is examined.
type ThrottleMiddleware struct {
	gate loginGate
}

func NewThrottleMiddleware(gate loginGate) *ThrottleMiddleware {
	return &ThrottleMiddleware{gate: gate}
}

func (m *ThrottleMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.gate.Allow(r.Context(), ClientIP(r)); err != nil {
			if errors.Is(err, model.ErrTooManyAttempts) {
				writeAPIError(w, apierror.Forbidden("TOO_MANY_ATTEMPTS", "too many failed login attempts"))
				return
			}

			writeAPIError(w, apierror.New("INTERNAL_ERROR", "unexpected server error", "", http.StatusInternalServerError))
			return
		}

		next.ServeHTTP(w, r)
	})
}
