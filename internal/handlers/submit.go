package handlers

//go:generate mockgen -source=submit.go -destination=submit_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/accounting-marathon/internal/models"
)

// TestSubmitter defines the interface that the quiz service must implement.
type TestSubmitter interface {
	SubmitTest(ctx context.Context, sessionID string) (*models.TestOutcome, error)
}

// SubmitTestResponse is the final score with the leaderboard
// swagger:model SubmitTestResponse
type SubmitTestResponse struct {
	// example: 12
	Score int `json:"score"`

	// example: 14
	MaxScore int `json:"max_score"`

	// example: 93.41
	TimeTakenSeconds float64 `json:"time_taken_seconds"`

	// True when the submission time preceded the start time and elapsed time was clamped to zero
	ClockSkew bool `json:"clock_skew"`

	// False when the result could not be saved to the leaderboard
	Persisted bool `json:"persisted"`

	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`

	// True when the leaderboard could not be loaded
	LeaderboardUnavailable bool `json:"leaderboard_unavailable"`
}

// NewSubmitTestHandler returns an HTTP handler that scores and records the attempt.
// @Summary Submit test
// @Description Scores the session's attempt once, records the result and returns the top 10
// @Tags test
// @Produce json
// @Success 200 {object} handlers.SubmitTestResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "No active attempt"
// @Failure 409 {object} handlers.ErrorResponse "Test already submitted"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /test/submit [post]
// @Security BearerAuth
func NewSubmitTestHandler(svc TestSubmitter, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFrom(w, r, claimsGetter)
		if !ok {
			return
		}

		outcome, err := svc.SubmitTest(r.Context(), claims.SessionID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SubmitTestResponse{
			Score:                  outcome.Score,
			MaxScore:               outcome.MaxScore,
			TimeTakenSeconds:       outcome.TimeTakenSeconds,
			ClockSkew:              outcome.ClockSkew,
			Persisted:              outcome.Persisted,
			Leaderboard:            outcome.Leaderboard,
			LeaderboardUnavailable: outcome.LeaderboardUnavailable,
		})
	}
}
