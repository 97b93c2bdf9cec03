package handlers

//go:generate mockgen -source=answer.go -destination=answer_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// AnswerSubmitter defines the interface that the quiz service must implement.
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, sessionID, questionKey, value string) error
}

// AnswerRequest represents one answer
// swagger:model AnswerRequest
type AnswerRequest struct {
	// Answer key: a multiple-choice id, or <task id>.vendor / <task id>.gl
	// required: true
	// example: bank-1.gl
	QuestionID string `json:"question_id"`

	// Selected option, GL label or vendor name
	// required: true
	// example: Office Supplies Expense
	Value string `json:"value"`
}

// NewSubmitAnswerHandler returns an HTTP handler that records one answer.
// @Summary Submit answer
// @Description Records an answer for the session's attempt. A later answer for the same key replaces the earlier one.
// @Tags test
// @Accept json
// @Produce json
// @Param answerRequest body handlers.AnswerRequest true "Answer"
// @Success 204 "Answer recorded"
// @Failure 400 {object} handlers.ErrorResponse "Unknown question or invalid value"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "No active attempt"
// @Failure 409 {object} handlers.ErrorResponse "Test already submitted"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /test/answers [post]
// @Security BearerAuth
func NewSubmitAnswerHandler(svc AnswerSubmitter, claimsGetter ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFrom(w, r, claimsGetter)
		if !ok {
			return
		}

		var req AnswerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.SubmitAnswer(r.Context(), claims.SessionID, req.QuestionID, req.Value); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
