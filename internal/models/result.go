package models

import "time"

// ResultDB represents a recorded test result
type ResultDB struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	Score            int       `json:"score" db:"score"`
	TimeTakenSeconds float64   `json:"time_taken_seconds" db:"time_taken_seconds"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry is a single row of the top results
// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	// example: alice@example.com
	Email string `json:"email" db:"email"`

	// example: 14
	Score int `json:"score" db:"score"`

	// example: 93.41
	TimeTakenSeconds float64 `json:"time_taken_seconds" db:"time_taken_seconds"`
}

// ResultEvent is published to Kafka after a result is recorded
type ResultEvent struct {
	EventID          string  `json:"event_id"`
	ResultID         int64   `json:"result_id"`
	UserID           int64   `json:"user_id"`
	Email            string  `json:"email"`
	Score            int     `json:"score"`
	MaxScore         int     `json:"max_score"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
	Timestamp        int64   `json:"timestamp"`
}
