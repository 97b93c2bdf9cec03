package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"
)

// Logouter defines the interface that the quiz service must implement.
type Logouter interface {
	Logout(ctx context.Context, sessionID string) error
}

// NewLogoutHandler returns an HTTP handler that discards the session's attempt.
// @Summary Logout
// @Description Discards the session's attempt. The token can no longer be used for the test.
// @Tags auth
// @Success 204 "Logged out"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFrom(w, r, claimsGetter)
		if !ok {
			return
		}

		if err := svc.Logout(r.Context(), claims.SessionID); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
