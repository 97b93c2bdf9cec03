package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	handler := NewRegisterHandler(mockSvc)

	tests := []struct {
		name         string
		body         string
		mockSetup    func()
		expectedCode int
		expectedID   int64
		expectedErr  string
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "john@example.com", "secret123").Return(int64(1), nil)
			},
			expectedCode: http.StatusCreated,
			expectedID:   1,
		},
		{
			name:         "invalid JSON",
			body:         "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid request body",
		},
		{
			name: "duplicate email",
			body: `{"email":"John@Example.com","password":"secret123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "John@Example.com", "secret123").
					Return(int64(0), services.ErrDuplicateAccount)
			},
			expectedCode: http.StatusConflict,
			expectedErr:  services.ErrDuplicateAccount.Error(),
		},
		{
			name: "short password",
			body: `{"email":"john@example.com","password":"short"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Register(gomock.Any(), "john@example.com", "short").
					Return(int64(0), services.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if rr.Code == http.StatusCreated {
				var resp RegisterResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedID, resp.ID)
				assert.Equal(t, "User registered successfully", resp.Message)
				return
			}
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeError(t, rr))
			}
		})
	}
}
