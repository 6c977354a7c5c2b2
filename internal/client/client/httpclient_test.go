package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method, path, auth string
	body               map[string]string
}

func newFakeAPI(t *testing.T, status int, reply string) (*AuthClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path, rec.auth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewAuthClient(srv.URL+"/", time.Second), rec
}

const okReply = `{"user":{"id":"u1","username":"a","email":"a@b.com","role":"user","credits":10},"token":"tok1"}`

func TestAuthClient_Login(t *testing.T) {
	c, rec := newFakeAPI(t, http.StatusOK, okReply)

	resp, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok1", resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, int64(10), resp.User.Credits)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/auth/login", rec.path)
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "pw"}, rec.body)
}

func TestAuthClient_Register(t *testing.T) {
	c, rec := newFakeAPI(t, http.StatusCreated, okReply)

	resp, err := c.Register(context.Background(), "a", "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok1", resp.Token)
	assert.Equal(t, "/api/auth/register", rec.path)
	assert.Equal(t, "a", rec.body["username"])
}

func TestAuthClient_RejectedCredentials(t *testing.T) {
	c, _ := newFakeAPI(t, http.StatusBadRequest, `{"message":"User not found"}`)

	_, err := c.Login(context.Background(), "x@b.com", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "User not found", err.Error())

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "User not found", msg)
}

func TestAuthClient_ServerErrorWithoutBody(t *testing.T) {
	c, _ := newFakeAPI(t, http.StatusInternalServerError, `oops`)

	_, err := c.Login(context.Background(), "a@b.com", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "http 500", err.Error())
	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestAuthClient_MalformedResponse(t *testing.T) {
	c, _ := newFakeAPI(t, http.StatusOK, `{"user":null,"token":""}`)
	_, err := c.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	c, _ = newFakeAPI(t, http.StatusOK, `not json`)
	_, err = c.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAuthClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAuthClient(url, time.Second).Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAuthClient_Me(t *testing.T) {
	c, rec := newFakeAPI(t, http.StatusOK, `{"user":{"id":"u1"}}`)
	user, err := c.Me(context.Background(), "tok1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Bearer tok1", rec.auth)

	c, _ = newFakeAPI(t, http.StatusUnauthorized, `{"message":"Token expired"}`)
	_, err = c.Me(context.Background(), "old")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token expired", err.Error())
}

func TestAPIError_IsOnlyUnauthorizedFor401(t *testing.T) {
	assert.False(t, errors.Is(&APIError{StatusCode: 400}, ErrUnauthorized))
	assert.True(t, errors.Is(&APIError{StatusCode: 401}, ErrUnauthorized))
}
