package services

//go:generate mockgen -source=quiz.go -destination=quiz_mock.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/sbilibin2017/accounting-marathon/internal/questions"
	"github.com/sbilibin2017/accounting-marathon/internal/repositories"
	"github.com/sbilibin2017/accounting-marathon/internal/scoring"
	"github.com/segmentio/kafka-go"
)

// Leaderboard limits.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// MaxVendorLength caps free-text vendor answers, in characters.
const MaxVendorLength = 200

// AttemptStore keeps per-session test attempts.
type AttemptStore interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	Get(ctx context.Context, sessionID string) (*models.Attempt, error)
	SaveAnswer(ctx context.Context, sessionID string, questionKey string, value string) error
	MarkSubmitted(ctx context.Context, sessionID string, submittedAt time.Time, grade repositories.GradeFunc) (*models.Attempt, error)
	Delete(ctx context.Context, sessionID string) error
}

// ResultWriter appends results to the ledger.
type ResultWriter interface {
	Save(ctx context.Context, userID int64, score int, timeTakenSeconds float64) (int64, error)
}

// ResultReader reads the leaderboard.
type ResultReader interface {
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// QuizOpt configures a QuizService.
type QuizOpt func(*QuizService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) QuizOpt {
	return func(s *QuizService) {
		s.now = now
	}
}

// QuizService runs test attempts, scores them and records results.
type QuizService struct {
	bank        *questions.Bank
	attempts    AttemptStore
	writer      ResultWriter
	reader      ResultReader
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewQuizService creates a new QuizService. kafkaWriter may be nil.
func NewQuizService(
	bank *questions.Bank,
	attempts AttemptStore,
	writer ResultWriter,
	reader ResultReader,
	kafkaWriter KafkaWriter,
	opts ...QuizOpt,
) *QuizService {
	s := &QuizService{
		bank:        bank,
		attempts:    attempts,
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bank returns the question bank.
func (s *QuizService) Bank() *questions.Bank {
	return s.bank
}

// StartAttempt opens a new attempt and returns its session id.
func (s *QuizService) StartAttempt(ctx context.Context, userID int64, email string) (string, error) {
	attempt := &models.Attempt{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Email:     email,
		StartedAt: s.now(),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		logger.Log.Errorw("failed to create attempt", "user_id", userID, "error", err)
		return "", storeError(err)
	}
	return attempt.SessionID, nil
}

// GetAttempt returns the attempt of a session.
func (s *QuizService) GetAttempt(ctx context.Context, sessionID string) (*models.Attempt, error) {
	attempt, err := s.attempts.Get(ctx, sessionID)
	if err != nil {
		return nil, attemptError(sessionID, err)
	}
	return attempt, nil
}

// SubmitAnswer records the answer for one question key, replacing any previous answer.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, questionKey, value string) error {
	if err := s.checkAnswer(questionKey, value); err != nil {
		return err
	}
	if err := s.attempts.SaveAnswer(ctx, sessionID, questionKey, value); err != nil {
		return attemptError(sessionID, err)
	}
	return nil
}

func (s *QuizService) checkAnswer(questionKey, value string) error {
	field, ok := s.bank.Lookup(questionKey)
	if !ok {
		return validationError("unknown question %q", questionKey)
	}

	switch field.Kind {
	case questions.KindMultipleChoice:
		if !slices.Contains(field.MultipleChoice.Options, value) {
			return validationError("%q is not an option of %q", value, questionKey)
		}
	case questions.KindCategory:
		if !s.bank.IsGLOption(value) {
			return validationError("%q is not a GL category", value)
		}
	case questions.KindVendor:
		if utf8.RuneCountInString(value) > MaxVendorLength {
			return validationError("vendor must be at most %d characters", MaxVendorLength)
		}
	}
	return nil
}

// SubmitTest scores the attempt once, freezes it and records the result.
// A failure to record or to read the leaderboard does not hide the score from the user.
func (s *QuizService) SubmitTest(ctx context.Context, sessionID string) (*models.TestOutcome, error) {
	submittedAt := s.now()
	attempt, err := s.attempts.MarkSubmitted(ctx, sessionID, submittedAt, s.grade(submittedAt))
	if err != nil {
		return nil, attemptError(sessionID, err)
	}
	score, elapsed, clockSkew := attempt.Score, attempt.TimeTakenSeconds, attempt.ClockSkew
	if clockSkew {
		logger.Log.Warnw("submission precedes attempt start, elapsed time clamped",
			"session_id", sessionID, "started_at", attempt.StartedAt, "submitted_at", submittedAt)
	}

	outcome := &models.TestOutcome{
		Score:            score,
		MaxScore:         scoring.MaxScore(s.bank),
		TimeTakenSeconds: elapsed,
		ClockSkew:        clockSkew,
	}

	resultID, err := s.writer.Save(ctx, attempt.UserID, score, elapsed)
	if err != nil {
		logger.Log.Errorw("failed to record result", "user_id", attempt.UserID, "score", score, "error", err)
	} else {
		outcome.Persisted = true
		outcome.ResultID = resultID
		s.publishResult(ctx, models.ResultEvent{
			EventID:          uuid.NewString(),
			ResultID:         resultID,
			UserID:           attempt.UserID,
			Email:            attempt.Email,
			Score:            score,
			MaxScore:         outcome.MaxScore,
			TimeTakenSeconds: elapsed,
			Timestamp:        submittedAt.Unix(),
		})
	}

	top, err := s.reader.Top(ctx, DefaultLeaderboardLimit)
	if err != nil {
		logger.Log.Errorw("failed to read leaderboard", "error", err)
		outcome.Leaderboard = []models.LeaderboardEntry{}
		outcome.LeaderboardUnavailable = true
	} else {
		outcome.Leaderboard = top
	}

	logger.Log.Infow("test submitted",
		"user_id", attempt.UserID, "score", score, "time_taken_seconds", elapsed, "persisted", outcome.Persisted)
	return outcome, nil
}

// grade scores the answers of an attempt as they are when it is frozen.
func (s *QuizService) grade(submittedAt time.Time) repositories.GradeFunc {
	return func(attempt *models.Attempt) {
		attempt.Score = scoring.TotalScore(s.bank, attempt.Answers)
		attempt.TimeTakenSeconds, attempt.ClockSkew = scoring.ElapsedTime(attempt.StartedAt, submittedAt)
	}
}

// TopResults returns the leaderboard. A non-positive limit selects the default.
func (s *QuizService) TopResults(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	limit = min(limit, MaxLeaderboardLimit)

	top, err := s.reader.Top(ctx, limit)
	if err != nil {
		logger.Log.Errorw("failed to read leaderboard", "limit", limit, "error", err)
		return nil, storeError(err)
	}
	return top, nil
}

// Logout discards the attempt of a session.
func (s *QuizService) Logout(ctx context.Context, sessionID string) error {
	if err := s.attempts.Delete(ctx, sessionID); err != nil {
		logger.Log.Errorw("failed to discard attempt", "session_id", sessionID, "error", err)
		return storeError(err)
	}
	return nil
}

// publishResult publishes a recorded result to Kafka.
func (s *QuizService) publishResult(ctx context.Context, event models.ResultEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "result_id", event.ResultID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal result for Kafka", "result_id", event.ResultID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ResultID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish result to Kafka", "result_id", event.ResultID, "error", err)
	} else {
		logger.Log.Infow("Result published to Kafka", "result_id", event.ResultID, "score", event.Score)
	}
}

func attemptError(sessionID string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrAttemptNotFound):
		return ErrNoActiveAttempt
	case errors.Is(err, repositories.ErrAttemptAlreadySubmitted):
		return ErrAttemptSubmitted
	default:
		logger.Log.Errorw("attempt store failure", "session_id", sessionID, "error", err)
		return storeError(err)
	}
}
