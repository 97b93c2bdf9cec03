package handlers

//go:generate mockgen -source=leaderboard.go -destination=leaderboard_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/accounting-marathon/internal/models"
)

// LeaderboardReader defines the interface that the quiz service must implement.
type LeaderboardReader interface {
	TopResults(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// LeaderboardResponse lists the best results
// swagger:model LeaderboardResponse
type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

// NewLeaderboardHandler returns an HTTP handler for the leaderboard.
// @Summary Leaderboard
// @Description Best results by score, ties broken by the shorter time
// @Tags results
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} handlers.LeaderboardResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid limit"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /leaderboard [get]
func NewLeaderboardHandler(svc LeaderboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeErrorMessage(w, http.StatusBadRequest, "limit must be an integer")
				return
			}
			limit = n
		}

		entries, err := svc.TopResults(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
