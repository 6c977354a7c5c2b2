package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/models"
)

// maxBody caps how much of a reply is read.
const maxBody = 1 << 20

// AuthClient calls the credential service.
type AuthClient struct {
	baseURL string
	http    *http.Client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *AuthClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := models.RegisterRequest{Username: username, Email: email, Password: password}
	return c.authenticate(ctx, "/api/auth/register", body, http.StatusCreated)
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}
	return c.authenticate(ctx, "/api/auth/login", body, http.StatusOK)
}

// Me fetches the user behind token.
func (c *AuthClient) Me(ctx context.Context, token string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", common.BearerPrefix+token)

	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, ErrMalformedResponse
	}
	return out.User, nil
}

func (c *AuthClient) authenticate(ctx context.Context, path string, body any, want int) (*models.AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.AuthResponse
	if err := c.do(req, want, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.Token == "" {
		return nil, ErrMalformedResponse
	}
	return &out, nil
}

// do sends req and decodes a want-status reply into out. Any other status
// becomes *APIError.
func (c *AuthClient) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e models.ErrorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
