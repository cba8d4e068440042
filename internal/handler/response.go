package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"authgate/internal/model"
	"authgate/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError maps the closed failure set to its status codes. Anything outside
// that set, store failures included, becomes a generic 500 whose detail goes
// to the log and never to the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrCredentialsNotProvided) {
		status = http.StatusUnauthorized
		body.Code = "CREDENTIALS_NOT_PROVIDED"
		body.Message = "Credentials not provided"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusUnauthorized
		body.Code = "USER_NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "INVALID_CREDENTIALS"
		body.Message = "Invalid credentials"
	} else if errors.Is(err, model.ErrTooManyAttempts) {
		status = http.StatusForbidden
		body.Code = "TOO_MANY_ATTEMPTS"
		body.Message = "Too many failed login attempts"
	} else if errors.Is(err, model.ErrInvalidToken) {
		status = http.StatusUnauthorized
		body.Code = "INVALID_TOKEN"
		body.Message = "Invalid token"
	} else if errors.Is(err, model.ErrTokenNotProvided) {
		status = http.StatusUnauthorized
		body.Code = "TOKEN_NOT_PROVIDED"
		body.Message = "Authorization token not provided"
	} else if errors.Is(err, model.ErrStoreUnavailable) {
		slog.Error("credential store failure", "error", err.Error())
	} else {
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
