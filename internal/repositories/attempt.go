package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
)

var (
	// ErrAttemptNotFound is returned when the session has no attempt (never started, expired or discarded).
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptAlreadySubmitted is returned when an attempt is modified after submission.
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
)

// Hash fields of an attempt. Answers are stored as answerPrefix + question key.
const (
	fieldUserID      = "user_id"
	fieldEmail       = "email"
	fieldStartedAt   = "started_at"
	fieldSubmittedAt = "submitted_at"
	fieldScore       = "score"
	fieldTimeTaken   = "time_taken_seconds"
	fieldClockSkew   = "clock_skew"
	answerPrefix     = "answer:"
)

// maxTxRetries bounds optimistic transaction retries on concurrent writes to one attempt.
const maxTxRetries = 3

// AttemptCacheRepository keeps test attempts in Redis, one hash per session, expiring with the session.
type AttemptCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewAttemptCacheRepository creates a new repository instance with the attempt TTL
func NewAttemptCacheRepository(client *redis.Client, expiration time.Duration) *AttemptCacheRepository {
	return &AttemptCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func attemptKey(sessionID string) string {
	return fmt.Sprintf("attempt:%s", sessionID)
}

// Create stores a fresh attempt, replacing anything stored under the same session.
func (r *AttemptCacheRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	key := attemptKey(attempt.SessionID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldUserID, attempt.UserID,
			fieldEmail, attempt.Email,
			fieldStartedAt, attempt.StartedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, r.exp)
		return nil
	})

	logger.Log.Infow("attempt created",
		"key", key,
		"user_id", attempt.UserID,
		"error", err,
	)

	return err
}

// Get loads the attempt of a session.
func (r *AttemptCacheRepository) Get(ctx context.Context, sessionID string) (*models.Attempt, error) {
	key := attemptKey(sessionID)
	fields, err := r.client.HGetAll(ctx, key).Result()

	logger.Log.Infow("attempt read",
		"key", key,
		"fields", len(fields),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrAttemptNotFound
	}
	return parseAttempt(sessionID, fields)
}

// SaveAnswer stores the answer for a question key, overwriting a previous one.
func (r *AttemptCacheRepository) SaveAnswer(ctx context.Context, sessionID, questionKey, value string) error {
	key := attemptKey(sessionID)
	_, err := r.update(ctx, sessionID, func(pipe redis.Pipeliner, _ *models.Attempt) {
		pipe.HSet(ctx, key, answerPrefix+questionKey, value)
	})

	logger.Log.Infow("answer saved",
		"key", key,
		"question", questionKey,
		"error", err,
	)

	return err
}

// GradeFunc fills Score, TimeTakenSeconds and ClockSkew of an attempt. It may run more than
// once when the attempt changes concurrently.
type GradeFunc func(attempt *models.Attempt)

// MarkSubmitted freezes the attempt. grade runs on the answers read under WATCH, so the frozen
// score always matches the frozen answers. Only the first call for an attempt succeeds.
func (r *AttemptCacheRepository) MarkSubmitted(ctx context.Context, sessionID string, submittedAt time.Time, grade GradeFunc) (*models.Attempt, error) {
	key := attemptKey(sessionID)
	attempt, err := r.update(ctx, sessionID, func(pipe redis.Pipeliner, attempt *models.Attempt) {
		grade(attempt)
		attempt.SubmittedAt = &submittedAt
		pipe.HSet(ctx, key,
			fieldSubmittedAt, submittedAt.UTC().Format(time.RFC3339Nano),
			fieldScore, attempt.Score,
			fieldTimeTaken, strconv.FormatFloat(attempt.TimeTakenSeconds, 'f', -1, 64),
			fieldClockSkew, strconv.FormatBool(attempt.ClockSkew),
		)
	})

	fields := []any{"key", key, "error", err}
	if err == nil {
		fields = append(fields, "score", attempt.Score, "time_taken_seconds", attempt.TimeTakenSeconds)
	}
	logger.Log.Infow("attempt submitted", fields...)

	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// Delete discards the attempt of a session.
func (r *AttemptCacheRepository) Delete(ctx context.Context, sessionID string) error {
	key := attemptKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("attempt deleted",
		"key", key,
		"error", err,
	)

	return err
}

// update loads the attempt under WATCH and applies write only to an existing, unsubmitted
// attempt. Any concurrent change to the key aborts EXEC and the read is retried.
func (r *AttemptCacheRepository) update(ctx context.Context, sessionID string, write func(pipe redis.Pipeliner, attempt *models.Attempt)) (*models.Attempt, error) {
	key := attemptKey(sessionID)
	var attempt *models.Attempt

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return ErrAttemptNotFound
		}
		current, err := parseAttempt(sessionID, fields)
		if err != nil {
			return err
		}
		if current.SubmittedAt != nil {
			return ErrAttemptAlreadySubmitted
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			write(pipe, current)
			return nil
		})
		if err != nil {
			return err
		}
		attempt = current
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return attempt, nil
	}
	return nil, redis.TxFailedErr
}

func parseAttempt(sessionID string, fields map[string]string) (*models.Attempt, error) {
	attempt := &models.Attempt{
		SessionID: sessionID,
		Email:     fields[fieldEmail],
		Answers:   make(map[string]string),
	}

	var err error
	if attempt.UserID, err = strconv.ParseInt(fields[fieldUserID], 10, 64); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldUserID, err)
	}
	if attempt.StartedAt, err = time.Parse(time.RFC3339Nano, fields[fieldStartedAt]); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fieldStartedAt, err)
	}

	if v, ok := fields[fieldSubmittedAt]; ok {
		submittedAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fieldSubmittedAt, err)
		}
		attempt.SubmittedAt = &submittedAt
		if attempt.Score, err = strconv.Atoi(fields[fieldScore]); err != nil {
			return nil, fmt.Errorf("parse %s: %w", fieldScore, err)
		}
		if attempt.TimeTakenSeconds, err = strconv.ParseFloat(fields[fieldTimeTaken], 64); err != nil {
			return nil, fmt.Errorf("parse %s: %w", fieldTimeTaken, err)
		}
		attempt.ClockSkew = fields[fieldClockSkew] == "true"
	}

	for field, value := range fields {
		if questionKey, ok := strings.CutPrefix(field, answerPrefix); ok {
			attempt.Answers[questionKey] = value
		}
	}

	return attempt, nil
}
