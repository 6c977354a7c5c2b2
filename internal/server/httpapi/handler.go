// Package httpapi serves the credential endpoints over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgServerError  = "Server error"
	msgUnauthorized = "Unauthorized"
)

// Credentials is the part of services.UserService the handlers need.
type Credentials interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type Handler struct {
	users   Credentials
	secret  []byte
	metrics *Metrics
	logger  logging.Logger
}

func NewHandler(users Credentials, secretKey string, metrics *Metrics, l logging.Logger) *Handler {
	return &Handler{
		users:   users,
		secret:  []byte(secretKey),
		metrics: metrics,
		logger:  l.With("module", "httpapi"),
	}
}

// RegisterRoutes mounts the auth API under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.GET("/auth/me", h.Me)
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, models.ErrorResponse{Message: msg})
}

// credentialError maps service errors to a status and a message. Rejected
// credentials are 400 and carry the sentinel text.
func credentialError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrUsernameTaken),
		errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrInvalidPassword):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		code, msg := credentialError(err)
		h.metrics.authAttempt("register", code)
		if code == http.StatusInternalServerError {
			h.logger.Error(ctx, "registration failed", "error", err)
		}
		fail(c, code, msg)
		return
	}

	h.metrics.authAttempt("register", http.StatusCreated)
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		code, msg := credentialError(err)
		h.metrics.authAttempt("login", code)
		if code == http.StatusInternalServerError {
			h.logger.Error(ctx, "login failed", "error", err)
		}
		fail(c, code, msg)
		return
	}

	h.metrics.authAttempt("login", http.StatusOK)
	c.JSON(http.StatusOK, resp)
}

// Me returns the user behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), common.BearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		fail(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	claims, err := auth.ParseToken(strings.TrimSpace(token), h.secret)
	if err != nil {
		msg := msgUnauthorized
		if errors.Is(err, common.ErrTokenExpired) {
			msg = "Token expired"
		}
		fail(c, http.StatusUnauthorized, msg)
		return
	}

	user, err := h.users.Me(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fail(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		h.logger.Error(ctx, "me failed", "user_id", claims.UserID, "error", err)
		fail(c, http.StatusInternalServerError, msgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
