package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sbilibin2017/accounting-marathon/internal/hasher"
	"github.com/sbilibin2017/accounting-marathon/internal/logger"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/sbilibin2017/accounting-marathon/internal/repositories"
)

// dummyPassword is hashed once and compared against for unknown emails.
const dummyPassword = "accounting-marathon-dummy-password"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email string, passwordHash string) (int64, error)
}

// PasswordHasher derives and verifies password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64, email string, sessionID string) (string, error)
}

// AttemptStarter opens a test attempt for a freshly authenticated user and returns its session id.
type AttemptStarter interface {
	StartAttempt(ctx context.Context, userID int64, email string) (string, error)
}

type credentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=256"`
}

// AuthService handles registration and login.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	hasher   PasswordHasher
	jwt      JWTGenerator
	attempts AttemptStarter

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher PasswordHasher, jwt JWTGenerator, attempts AttemptStarter) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		hasher:   hasher,
		jwt:      jwt,
		attempts: attempts,
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns the new user id.
func (svc *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	email = NormalizeEmail(email)
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return 0, validationErrorFrom(err)
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "email", email, "err", err)
		return 0, storeError(err)
	}
	if user != nil {
		logger.Log.Warnw("user already exists", "email", email)
		return 0, ErrDuplicateAccount
	}

	hash, err := svc.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	id, err := svc.writer.Save(ctx, email, hash)
	if errors.Is(err, repositories.ErrEmailTaken) {
		logger.Log.Warnw("user registered concurrently", "email", email)
		return 0, ErrDuplicateAccount
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "email", email, "err", err)
		return 0, storeError(err)
	}

	logger.Log.Infow("user registered", "user_id", id, "email", email)
	return id, nil
}

// Authenticate checks the credentials and returns the matching user.
// Unknown email and wrong password are indistinguishable to the caller.
func (svc *AuthService) Authenticate(ctx context.Context, email, password string) (*models.UserDB, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return nil, storeError(err)
	}

	if user == nil {
		svc.compareDummy(password)
		logger.Log.Warnw("login for unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := svc.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, hasher.ErrMismatch) {
			logger.Log.Errorw("stored password hash is unusable", "user_id", user.ID, "err", err)
		} else {
			logger.Log.Warnw("invalid credentials", "email", email)
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user, starts a test attempt and returns a session token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	sessionID, err := svc.attempts.StartAttempt(ctx, user.ID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to start attempt", "user_id", user.ID, "err", err)
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, user.ID, user.Email, sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	logger.Log.Infow("user logged in", "user_id", user.ID, "session_id", sessionID)
	return token, nil
}

func (svc *AuthService) compareDummy(password string) {
	svc.dummyOnce.Do(func() {
		hash, err := svc.hasher.Hash(dummyPassword)
		if err != nil {
			logger.Log.Errorw("failed to hash dummy password", "err", err)
			return
		}
		svc.dummyHash = hash
	})
	if svc.dummyHash != "" {
		_ = svc.hasher.Compare(svc.dummyHash, password)
	}
}
