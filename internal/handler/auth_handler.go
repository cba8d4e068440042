package handler

import (
	"encoding/json"
	"net/http"

	"authgate/internal/middleware"
	"authgate/internal/model"
	"authgate/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the credential payload and responds with a signed token.
// A body that fails to decode is treated the same as missing credentials: the
// flow rejects it (and records the attempt) without touching the store.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	token, err := h.service.Login(r.Context(), payload.Email, payload.Password, middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.TokenResponse{Token: token})
}

// Me returns the identity of the verified token's subject, confirming the
// record still exists in the credential store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrTokenNotProvided)
		return
	}

	user, err := h.service.UserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

// Session is the cookie-gated twin of Me: it answers with the claims that were
// extracted from the named cookie and verified by the gate.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrTokenNotProvided)
		return
	}

	writeSuccess(w, http.StatusOK, claims)
}
