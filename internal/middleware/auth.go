package middleware

import (
	"context"
	"net/http"
	"strings"

	"authgate/internal/model"
	"authgate/pkg/apierror"
)

// tokenVerifier is satisfied by service.TokenService.
type tokenVerifier interface {
	Verify(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

// AuthMiddleware guards routes behind token verification. Two extraction
// gates feed it: the authorization header and a named cookie. Neither gate
// verifies anything itself; they only pull the raw token string out of the
// request before handing it to the verifier.
type AuthMiddleware struct {
	verifier   tokenVerifier
	cookieName string
}

func NewAuthMiddleware(verifier tokenVerifier, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, cookieName: cookieName}
}

// RequireBearer accepts only an authorization header of exactly two
// space-separated parts with the first literally "Bearer". A Basic header or
// a bare token is rejected even though it carries a token-like string.
func (m *AuthMiddleware) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimSpace(r.Header.Get("Authorization")), " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeAPIError(w, apierror.Unauthorized("TOKEN_NOT_PROVIDED", "authorization token not provided"))
			return
		}

		m.verifyAndServe(w, r, next, parts[1])
	})
}

// RequireCookie pulls the token from the configured cookie.
func (m *AuthMiddleware) RequireCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			writeAPIError(w, apierror.Unauthorized("TOKEN_NOT_PROVIDED", "authorization token not provided"))
			return
		}

		m.verifyAndServe(w, r, next, cookie.Value)
	})
}

func (m *AuthMiddleware) verifyAndServe(w http.ResponseWriter, r *http.Request, next http.Handler, token string) {
	claims, err := m.verifier.Verify(token)
	if err != nil {
		writeAPIError(w, apierror.Unauthorized("INVALID_TOKEN", "invalid token"))
		return
	}

	ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// ClaimsFromContext returns the verified claims a gate stored for the request.
func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)
	_ = jsonEncode(w, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}
