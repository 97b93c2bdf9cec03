package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSubmitAnswerHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAnswerSubmitter(ctrl)

	tests := []struct {
		name         string
		body         string
		claims       ClaimsGetter
		mockSetup    func()
		expectedCode int
	}{
		{
			name:   "recorded",
			body:   `{"question_id":"bank-1.gl","value":"Office Supplies Expense"}`,
			claims: withSession("sid"),
			mockSetup: func() {
				mockSvc.EXPECT().SubmitAnswer(gomock.Any(), "sid", "bank-1.gl", "Office Supplies Expense").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "unknown question",
			body:   `{"question_id":"nope","value":"x"}`,
			claims: withSession("sid"),
			mockSetup: func() {
				mockSvc.EXPECT().SubmitAnswer(gomock.Any(), "sid", "nope", "x").Return(services.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "already submitted",
			body:   `{"question_id":"mcq-1","value":"Asset"}`,
			claims: withSession("sid"),
			mockSetup: func() {
				mockSvc.EXPECT().SubmitAnswer(gomock.Any(), "sid", "mcq-1", "Asset").Return(services.ErrAttemptSubmitted)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "invalid JSON",
			body:         "{",
			claims:       withSession("sid"),
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unauthorized",
			body:         `{"question_id":"mcq-1","value":"Asset"}`,
			claims:       noSession,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/test/answers", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewSubmitAnswerHandler(mockSvc, tt.claims).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
