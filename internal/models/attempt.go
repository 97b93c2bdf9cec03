package models

import "time"

// AttemptStatus is derived from the attempt contents.
type AttemptStatus string

const (
	AttemptStarted    AttemptStatus = "started"
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

// Attempt is one user's pass through the question set, bound to a session.
type Attempt struct {
	SessionID   string
	UserID      int64
	Email       string
	StartedAt   time.Time
	Answers     map[string]string
	SubmittedAt *time.Time

	// Frozen at submission.
	Score            int
	TimeTakenSeconds float64
	ClockSkew        bool
}

// Status returns the lifecycle state of the attempt.
func (a *Attempt) Status() AttemptStatus {
	switch {
	case a.SubmittedAt != nil:
		return AttemptSubmitted
	case len(a.Answers) > 0:
		return AttemptInProgress
	default:
		return AttemptStarted
	}
}

// TestOutcome is what a user sees after submitting a test.
type TestOutcome struct {
	Score                  int
	MaxScore               int
	TimeTakenSeconds       float64
	ClockSkew              bool
	Persisted              bool
	ResultID               int64
	Leaderboard            []LeaderboardEntry
	LeaderboardUnavailable bool
}
