package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	resp *models.AuthResponse
	user *models.User
	err  error

	lastUsername, lastEmail, lastPassword, lastUserID string
}

func (f *fakeCredentials) Register(_ context.Context, username, email, password string) (*models.AuthResponse, error) {
	f.lastUsername, f.lastEmail, f.lastPassword = username, email, password
	return f.resp, f.err
}

func (f *fakeCredentials) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.resp, f.err
}

func (f *fakeCredentials) Me(_ context.Context, userID string) (*models.User, error) {
	f.lastUserID = userID
	return f.user, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(f *fakeCredentials) *gin.Engine {
	m := NewMetrics()
	return NewRouter(NewHandler(f, "secret", m, logging.Nop{}), m, logging.Nop{})
}

func do(r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestRegister(t *testing.T) {
	ok := &models.AuthResponse{User: &models.User{ID: "u1", Credits: 10}, Token: "tok1"}

	tests := []struct {
		name     string
		body     string
		resp     *models.AuthResponse
		err      error
		wantCode int
		wantMsg  string
	}{
		{"created", `{"username":"a","email":"a@b.com","password":"p"}`, ok, nil, http.StatusCreated, ""},
		{"email taken", `{"username":"a","email":"a@b.com","password":"p"}`, nil, common.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"username taken", `{"username":"a","email":"a@b.com","password":"p"}`, nil, common.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
		{"bad body", `{`, nil, nil, http.StatusBadRequest, "Invalid request body"},
		{"server error", `{"username":"a","email":"a@b.com","password":"p"}`, nil, errors.New("db down"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeCredentials{resp: tt.resp, err: tt.err}
			w := do(newRouter(f), http.MethodPost, "/api/auth/register", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, message(t, w))
				return
			}
			var got models.AuthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "tok1", got.Token)
			assert.Equal(t, "u1", got.User.ID)
			assert.Equal(t, "a@b.com", f.lastEmail)
			assert.Equal(t, "a", f.lastUsername)
		})
	}
}

func TestLogin(t *testing.T) {
	ok := &models.AuthResponse{User: &models.User{ID: "u1"}, Token: "tok1"}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"unknown user", common.ErrUserNotFound, http.StatusBadRequest, "User not found"},
		{"wrong password", common.ErrInvalidPassword, http.StatusBadRequest, "Invalid password"},
		{"wrapped failure", errors.Join(errors.New("x"), common.ErrorInternal), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeCredentials{resp: ok, err: tt.err}
			w := do(newRouter(f), http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"p"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "p", f.lastPassword)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, message(t, w))
			}
		})
	}
}

func TestMe(t *testing.T) {
	token, err := auth.GenerateToken("u1", "a@b.com", []byte("secret"), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("u1", "a@b.com", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	f := &fakeCredentials{user: &models.User{ID: "u1", Email: "a@b.com"}}
	r := newRouter(f)

	w := do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, "u1", f.lastUserID)

	w = do(r, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", message(t, w))

	f.err = common.ErrorNotFound
	w = do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	f.err = errors.New("db down")
	w = do(r, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	r := newRouter(&fakeCredentials{})

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Len(t, w.Header().Get(RequestIDHeader), 16)

	w = do(r, http.MethodGet, "/health", "", RequestIDHeader, "abc")
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(&fakeCredentials{err: common.ErrUserNotFound})

	do(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"p"}`)
	w := do(r, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `creatorhub_auth_attempts_total{op="login",status="400"} 1`)
	assert.Contains(t, body, `creatorhub_http_requests_total{method="POST",route="/api/auth/login",status="400"} 1`)
}
