package services_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/sbilibin2017/accounting-marathon/internal/hasher"
	"github.com/sbilibin2017/accounting-marathon/internal/jwt"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/sbilibin2017/accounting-marathon/internal/questions"
	"github.com/sbilibin2017/accounting-marathon/internal/repositories"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUsers mirrors the users table with its unique lower(email) index.
type memUsers struct {
	mu    sync.Mutex
	users []models.UserDB
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if services.NormalizeEmail(u.Email) == services.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUsers) Save(_ context.Context, email, hash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if services.NormalizeEmail(u.Email) == services.NormalizeEmail(email) {
			return 0, repositories.ErrEmailTaken
		}
	}
	id := int64(len(s.users) + 1)
	s.users = append(s.users, models.UserDB{ID: id, Email: email, PasswordHash: hash})
	return id, nil
}

type memAttempts struct {
	mu       sync.Mutex
	attempts map[string]*models.Attempt
}

func (s *memAttempts) Create(_ context.Context, a *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	cp.Answers = map[string]string{}
	s.attempts[a.SessionID] = &cp
	return nil
}

func (s *memAttempts) Get(_ context.Context, sid string) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[sid]
	if !ok {
		return nil, repositories.ErrAttemptNotFound
	}
	cp := *a
	cp.Answers = make(map[string]string, len(a.Answers))
	for k, v := range a.Answers {
		cp.Answers[k] = v
	}
	return &cp, nil
}

func (s *memAttempts) SaveAnswer(_ context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[sid]
	if !ok {
		return repositories.ErrAttemptNotFound
	}
	if a.SubmittedAt != nil {
		return repositories.ErrAttemptAlreadySubmitted
	}
	a.Answers[key] = value
	return nil
}

func (s *memAttempts) MarkSubmitted(_ context.Context, sid string, at time.Time, grade repositories.GradeFunc) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[sid]
	if !ok {
		return nil, repositories.ErrAttemptNotFound
	}
	if a.SubmittedAt != nil {
		return nil, repositories.ErrAttemptAlreadySubmitted
	}
	grade(a)
	a.SubmittedAt = &at
	cp := *a
	return &cp, nil
}

func (s *memAttempts) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, sid)
	return nil
}

// memLedger orders like the results query: score desc, time asc, id asc.
type memLedger struct {
	mu      sync.Mutex
	users   *memUsers
	results []models.ResultDB
}

func (l *memLedger) Save(_ context.Context, userID int64, score int, elapsed float64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := int64(len(l.results) + 1)
	l.results = append(l.results, models.ResultDB{ID: id, UserID: userID, Score: score, TimeTakenSeconds: elapsed})
	return id, nil
}

func (l *memLedger) Top(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := slices.Clone(l.results)
	slices.SortStableFunc(rows, func(a, b models.ResultDB) int {
		switch {
		case a.Score != b.Score:
			return b.Score - a.Score
		case a.TimeTakenSeconds < b.TimeTakenSeconds:
			return -1
		case a.TimeTakenSeconds > b.TimeTakenSeconds:
			return 1
		default:
			return int(a.ID - b.ID)
		}
	})
	entries := []models.LeaderboardEntry{}
	for _, r := range rows[:min(limit, len(rows))] {
		entries = append(entries, models.LeaderboardEntry{
			Email:            l.users.users[r.UserID-1].Email,
			Score:            r.Score,
			TimeTakenSeconds: r.TimeTakenSeconds,
		})
	}
	return entries, nil
}

type flow struct {
	auth   *services.AuthService
	quiz   *services.QuizService
	tokens *jwt.JWT
	ledger *memLedger
	bank   *questions.Bank
	now    time.Time
}

func newFlow(t *testing.T) *flow {
	t.Helper()

	bank, err := questions.Default()
	require.NoError(t, err)

	f := &flow{bank: bank, now: t0}
	users := &memUsers{}
	f.ledger = &memLedger{users: users}
	f.tokens = jwt.New(jwt.WithSecretKey("flow-secret"), jwt.WithExpiration(time.Hour))
	f.quiz = services.NewQuizService(bank, &memAttempts{attempts: map[string]*models.Attempt{}}, f.ledger, f.ledger, nil,
		services.WithClock(func() time.Time { return f.now }))
	f.auth = services.NewAuthService(users, users, hasher.New(bcrypt.MinCost), f.tokens, f.quiz)
	return f
}

func (f *flow) login(t *testing.T, email, password string) string {
	t.Helper()
	token, err := f.auth.Login(context.Background(), email, password)
	require.NoError(t, err)
	claims, err := f.tokens.GetClaims(context.Background(), token)
	require.NoError(t, err)
	return claims.SessionID
}

func TestFlow_RegisterThenAuthenticate(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	id, err := f.auth.Register(ctx, "Alice@Example.com", "correct-horse")
	require.NoError(t, err)

	user, err := f.auth.Authenticate(ctx, "alice@example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, errWrong := f.auth.Authenticate(ctx, "alice@example.com", "wrong-horse")
	_, errUnknown := f.auth.Authenticate(ctx, "bob@example.com", "correct-horse")
	assert.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())

	_, err = f.auth.Register(ctx, "ALICE@example.com", "another-pass")
	assert.ErrorIs(t, err, services.ErrDuplicateAccount)
}

func TestFlow_PerfectScoreRecordedOnce(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	sid := f.login(t, "alice@example.com", "correct-horse")

	// a changed answer replaces the earlier one
	require.NoError(t, f.quiz.SubmitAnswer(ctx, sid, "mcq-1", "Asset"))
	for key, value := range perfectAnswers(f.bank) {
		require.NoError(t, f.quiz.SubmitAnswer(ctx, sid, key, value))
	}

	attempt, err := f.quiz.GetAttempt(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, models.AttemptInProgress, attempt.Status())

	f.now = t0.Add(42 * time.Second)
	outcome, err := f.quiz.SubmitTest(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, len(f.bank.MultipleChoice)+3*len(f.bank.BankTasks), outcome.Score)
	assert.Equal(t, 42.0, outcome.TimeTakenSeconds)
	assert.True(t, outcome.Persisted)

	_, err = f.quiz.SubmitTest(ctx, sid)
	assert.ErrorIs(t, err, services.ErrAttemptSubmitted)
	assert.ErrorIs(t, f.quiz.SubmitAnswer(ctx, sid, "mcq-1", "Asset"), services.ErrAttemptSubmitted)

	assert.Len(t, f.ledger.results, 1)
	require.Len(t, outcome.Leaderboard, 1)
	assert.Equal(t, "alice@example.com", outcome.Leaderboard[0].Email)

	require.NoError(t, f.quiz.Logout(ctx, sid))
	_, err = f.quiz.GetAttempt(ctx, sid)
	assert.ErrorIs(t, err, services.ErrNoActiveAttempt)
}

func TestFlow_FasterTimeRanksFirst(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	play := func(email string, seconds int) {
		_, err := f.auth.Register(ctx, email, "password1")
		require.NoError(t, err)
		f.now = t0
		sid := f.login(t, email, "password1")
		for _, q := range f.bank.MultipleChoice {
			require.NoError(t, f.quiz.SubmitAnswer(ctx, sid, q.ID, q.Answer))
		}
		f.now = t0.Add(time.Duration(seconds) * time.Second)
		outcome, err := f.quiz.SubmitTest(ctx, sid)
		require.NoError(t, err)
		require.Equal(t, 5, outcome.Score)
	}

	play("slow@example.com", 120)
	play("fast@example.com", 90)

	top, err := f.quiz.TopResults(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "fast@example.com", top[0].Email)
	assert.Equal(t, 90.0, top[0].TimeTakenSeconds)
	assert.Equal(t, "slow@example.com", top[1].Email)
}
