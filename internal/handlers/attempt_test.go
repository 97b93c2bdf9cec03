package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/accounting-marathon/internal/models"
	"github.com/sbilibin2017/accounting-marathon/internal/questions"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestHandler(t *testing.T) {
	bank, err := questions.Default()
	require.NoError(t, err)
	started := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("in progress attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockAttemptGetter(ctrl)
		mockSvc.EXPECT().GetAttempt(gomock.Any(), "sid").Return(&models.Attempt{
			SessionID: "sid",
			StartedAt: started,
			Answers:   map[string]string{"mcq-1": "Asset"},
		}, nil)
		mockSvc.EXPECT().Bank().Return(bank)

		rr := httptest.NewRecorder()
		NewGetTestHandler(mockSvc, withSession("sid")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp TestResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "in_progress", resp.Status)
		assert.Equal(t, 14, resp.MaxScore)
		assert.Len(t, resp.MultipleChoice, 5)
		require.Len(t, resp.BankTasks, 3)
		assert.Equal(t, "bank-1.vendor", resp.BankTasks[0].VendorKey)
		assert.Equal(t, "bank-1.gl", resp.BankTasks[0].CategoryKey)
		assert.Equal(t, bank.GLOptions, resp.GLOptions)
		assert.Equal(t, map[string]string{"mcq-1": "Asset"}, resp.Answers)
		assert.Nil(t, resp.Score)
	})

	t.Run("correct answers are never exposed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockAttemptGetter(ctrl)
		mockSvc.EXPECT().GetAttempt(gomock.Any(), "sid").Return(&models.Attempt{StartedAt: started}, nil)
		mockSvc.EXPECT().Bank().Return(bank)

		rr := httptest.NewRecorder()
		NewGetTestHandler(mockSvc, withSession("sid")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		body := rr.Body.String()
		assert.NotContains(t, body, `"answer"`)
		assert.NotContains(t, body, `"vendor"`)
		assert.NotContains(t, body, "amazon")
		assert.Contains(t, body, `"status":"started"`)
	})

	t.Run("submitted attempt shows its score", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockAttemptGetter(ctrl)
		submitted := started.Add(time.Minute)
		mockSvc.EXPECT().GetAttempt(gomock.Any(), "sid").Return(&models.Attempt{
			StartedAt:        started,
			SubmittedAt:      &submitted,
			Score:            9,
			TimeTakenSeconds: 60,
		}, nil)
		mockSvc.EXPECT().Bank().Return(bank)

		rr := httptest.NewRecorder()
		NewGetTestHandler(mockSvc, withSession("sid")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		var resp TestResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "submitted", resp.Status)
		require.NotNil(t, resp.Score)
		assert.Equal(t, 9, *resp.Score)
		require.NotNil(t, resp.TimeTakenSeconds)
		assert.Equal(t, 60.0, *resp.TimeTakenSeconds)
	})

	t.Run("no attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockAttemptGetter(ctrl)
		mockSvc.EXPECT().GetAttempt(gomock.Any(), "sid").Return(nil, services.ErrNoActiveAttempt)

		rr := httptest.NewRecorder()
		NewGetTestHandler(mockSvc, withSession("sid")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockAttemptGetter(ctrl)

		rr := httptest.NewRecorder()
		NewGetTestHandler(mockSvc, noSession).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "unauthorized", decodeError(t, rr))
	})
}
