package handlers

//go:generate mockgen -source=attempt.go -destination=attempt_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/sbilibin2017/accounting-marathon/internal/questions"
	"github.com/sbilibin2017/accounting-marathon/internal/scoring"
)

// AttemptGetter defines the interface that the quiz service must implement.
type AttemptGetter interface {
	GetAttempt(ctx context.Context, sessionID string) (*models.Attempt, error)
	Bank() *questions.Bank
}

// MultipleChoiceQuestion is a question shown to the user
// swagger:model MultipleChoiceQuestion
type MultipleChoiceQuestion struct {
	// Answer key
	// example: mcq-1
	ID string `json:"id"`

	// example: Loan taken from bank will increase which account?
	Prompt string `json:"prompt"`

	// example: ["Expense","Income","Asset","Liability"]
	Options []string `json:"options"`
}

// BankTaskQuestion is a bank transaction to classify
// swagger:model BankTaskQuestion
type BankTaskQuestion struct {
	// example: bank-2
	ID string `json:"id"`

	// Raw bank statement line
	// example: UBER *TRIP HELP.UBER.COM
	Description string `json:"description"`

	// Answer key of the vendor field
	// example: bank-2.vendor
	VendorKey string `json:"vendor_key"`

	// Answer key of the GL category field
	// example: bank-2.gl
	CategoryKey string `json:"gl_key"`
}

// TestResponse is the question set together with the attempt state
// swagger:model TestResponse
type TestResponse struct {
	// example: in_progress
	Status string `json:"status"`

	StartedAt time.Time `json:"started_at"`

	// example: 14
	MaxScore int `json:"max_score"`

	MultipleChoice []MultipleChoiceQuestion `json:"multiple_choice"`
	BankTasks      []BankTaskQuestion       `json:"bank_tasks"`
	GLOptions      []string                 `json:"gl_options"`

	// Answers given so far, by answer key
	Answers map[string]string `json:"answers"`

	// Set once the test is submitted
	Score            *int     `json:"score,omitempty"`
	TimeTakenSeconds *float64 `json:"time_taken_seconds,omitempty"`
}

// NewGetTestHandler returns an HTTP handler that shows the questions and the current attempt.
// @Summary Get test
// @Description Returns all questions (without correct answers) and the state of the session's attempt
// @Tags test
// @Produce json
// @Success 200 {object} handlers.TestResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "No active attempt"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /test [get]
// @Security BearerAuth
func NewGetTestHandler(svc AttemptGetter, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFrom(w, r, claimsGetter)
		if !ok {
			return
		}

		attempt, err := svc.GetAttempt(r.Context(), claims.SessionID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTestResponse(svc.Bank(), attempt))
	}
}

func newTestResponse(bank *questions.Bank, attempt *models.Attempt) TestResponse {
	resp := TestResponse{
		Status:         string(attempt.Status()),
		StartedAt:      attempt.StartedAt,
		MaxScore:       scoring.MaxScore(bank),
		MultipleChoice: make([]MultipleChoiceQuestion, 0, len(bank.MultipleChoice)),
		BankTasks:      make([]BankTaskQuestion, 0, len(bank.BankTasks)),
		GLOptions:      bank.GLOptions,
		Answers:        attempt.Answers,
	}
	if resp.Answers == nil {
		resp.Answers = map[string]string{}
	}

	for _, q := range bank.MultipleChoice {
		resp.MultipleChoice = append(resp.MultipleChoice, MultipleChoiceQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	for _, task := range bank.BankTasks {
		resp.BankTasks = append(resp.BankTasks, BankTaskQuestion{
			ID:          task.ID,
			Description: task.Description,
			VendorKey:   questions.VendorKey(task.ID),
			CategoryKey: questions.CategoryKey(task.ID),
		})
	}

	if attempt.SubmittedAt != nil {
		score, elapsed := attempt.Score, attempt.TimeTakenSeconds
		resp.Score = &score
		resp.TimeTakenSeconds = &elapsed
	}
	return resp
}
