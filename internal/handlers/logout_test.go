package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/accounting-marathon/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)

	tests := []struct {
		name         string
		claims       ClaimsGetter
		mockSetup    func()
		expectedCode int
	}{
		{
			name:   "logged out",
			claims: withSession("sid"),
			mockSetup: func() {
				mockSvc.EXPECT().Logout(gomock.Any(), "sid").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "store unavailable",
			claims: withSession("sid"),
			mockSetup: func() {
				mockSvc.EXPECT().Logout(gomock.Any(), "sid").
					Return(fmt.Errorf("%w: %w", services.ErrStoreUnavailable, errors.New("redis down")))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:         "unauthorized",
			claims:       noSession,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rr := httptest.NewRecorder()
			NewLogoutHandler(mockSvc, tt.claims).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
