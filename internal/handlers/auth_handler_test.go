package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/models"
	"taskpad/internal/services"
)

type stubOTPService struct {
	issueErr  error
	verifyErr error
	expiresAt time.Time
}

func (s *stubOTPService) Issue(_ context.Context, _ string) (time.Time, error) {
	return s.expiresAt, s.issueErr
}

func (s *stubOTPService) Verify(_ context.Context, _, _ string) error {
	return s.verifyErr
}

func (s *stubOTPService) VerifyMagicLink(_ context.Context, _, _ string) error {
	return s.verifyErr
}

type stubUserService struct {
	user  *models.User
	isNew bool
}

func (s *stubUserService) GetOrCreateByEmail(_ context.Context, email string) (*models.User, bool, error) {
	if s.user == nil {
		s.user = &models.User{ID: 1, Email: email}
	}
	return s.user, s.isNew, nil
}

func (s *stubUserService) GetByID(_ context.Context, id int64) (*models.User, error) {
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, id int64, fullName, workspaceName string) (*models.User, error) {
	return s.user, nil
}

type stubAuthService struct{}

func (s *stubAuthService) IssueSession(_ *models.User) (string, error) {
	return "session-token", nil
}

func newAuthRouter(otp *stubOTPService, users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(otp, users, &stubAuthService{})
	r := gin.New()
	r.POST("/auth/request-code", h.RequestCode)
	r.POST("/auth/verify-code", h.VerifyCode)
	r.GET("/auth/magic", h.MagicCallback)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestCode_OK(t *testing.T) {
	otp := &stubOTPService{expiresAt: time.Now().Add(time.Minute)}
	r := newAuthRouter(otp, &stubUserService{})

	w := doJSON(t, r, http.MethodPost, "/auth/request-code", `{"email":"user@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "expires_at")
	assert.NotContains(t, resp, "code", "the code itself never appears in the response")
}

func TestRequestCode_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid email", services.ErrInvalidEmail, http.StatusBadRequest},
		{"rate limited", services.ErrRateLimited, http.StatusTooManyRequests},
		{"delivery failed", services.ErrDeliveryFailed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(&stubOTPService{issueErr: tc.err}, &stubUserService{})
			w := doJSON(t, r, http.MethodPost, "/auth/request-code", `{"email":"user@example.com"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestVerifyCode_OK(t *testing.T) {
	users := &stubUserService{user: &models.User{ID: 3, Email: "user@example.com", Onboarded: true}}
	r := newAuthRouter(&stubOTPService{}, users)

	w := doJSON(t, r, http.MethodPost, "/auth/verify-code", `{"email":"user@example.com","code":"482913"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-token", resp["token"])
	assert.Equal(t, true, resp["onboarded"])
	assert.Equal(t, false, resp["is_new_user"])
}

func TestVerifyCode_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad format", services.ErrBadFormat, http.StatusBadRequest},
		{"invalid or expired", services.ErrCodeInvalid, http.StatusUnauthorized},
		{"rate limited", services.ErrRateLimited, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(&stubOTPService{verifyErr: tc.err}, &stubUserService{})
			w := doJSON(t, r, http.MethodPost, "/auth/verify-code", `{"email":"user@example.com","code":"000000"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestMagicCallback_OK(t *testing.T) {
	users := &stubUserService{isNew: true}
	r := newAuthRouter(&stubOTPService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/auth/magic?email=user%40example.com&token=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_new_user"])
}
