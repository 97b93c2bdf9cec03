package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
)

// ResultWriteRepository appends results to the ledger
type ResultWriteRepository struct {
	db *sqlx.DB
}

func NewResultWriteRepository(db *sqlx.DB) *ResultWriteRepository {
	return &ResultWriteRepository{db: db}
}

// Save records a finished attempt and returns the result id.
func (r *ResultWriteRepository) Save(ctx context.Context, userID int64, score int, timeTakenSeconds float64) (int64, error) {
	const query = `
		INSERT INTO results (user_id, score, time_taken_seconds, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`
	args := []any{userID, score, timeTakenSeconds}

	var id int64
	err := r.db.GetContext(ctx, &id, query, args...)

	// Log query, args, result, error
	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return id, nil
}

// ResultReadRepository reads the leaderboard
type ResultReadRepository struct {
	db *sqlx.DB
}

func NewResultReadRepository(db *sqlx.DB) *ResultReadRepository {
	return &ResultReadRepository{db: db}
}

// Top returns the best results, highest score first and fastest time breaking ties.
func (r *ResultReadRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	const query = `
		SELECT u.email, r.score, r.time_taken_seconds
		FROM results r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.score DESC, r.time_taken_seconds ASC, r.id ASC
		LIMIT $1
	`

	entries := []models.LeaderboardEntry{}
	err := r.db.SelectContext(ctx, &entries, query, limit)

	// Log query, args, result, error
	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{limit},
		"result", len(entries),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
