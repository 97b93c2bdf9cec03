package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/accounting-marathon/internal/jwt"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
)

// ClaimsGetter returns the session claims of an authenticated request.
type ClaimsGetter func(ctx context.Context) (*jwt.Claims, bool)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: invalid email or password
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "))
	case errors.Is(err, services.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrNoActiveAttempt):
		writeErrorMessage(w, http.StatusNotFound, services.ErrNoActiveAttempt.Error())
	case errors.Is(err, services.ErrDuplicateAccount):
		writeErrorMessage(w, http.StatusConflict, services.ErrDuplicateAccount.Error())
	case errors.Is(err, services.ErrAttemptSubmitted):
		writeErrorMessage(w, http.StatusConflict, services.ErrAttemptSubmitted.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		writeErrorMessage(w, http.StatusServiceUnavailable, "service temporarily unavailable, please retry")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// sessionFrom returns the session claims or writes 401.
func sessionFrom(w http.ResponseWriter, r *http.Request, claimsGetter ClaimsGetter) (*jwt.Claims, bool) {
	claims, ok := claimsGetter(r.Context())
	if !ok || claims.SessionID == "" {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return claims, true
}
