package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/cryptox"
	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/auth"
	servermodels "github.com/dmitrijs2005/creatorhub/internal/server/models"
	"github.com/dmitrijs2005/creatorhub/internal/server/repositories/repomanager"
)

// UserService registers and logs in users and mints their session tokens.
type UserService struct {
	repos    repomanager.RepositoryManager
	secret   []byte
	validity time.Duration
	logger   logging.Logger
	now      func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, secret string, validity time.Duration, logger logging.Logger) *UserService {
	if validity <= 0 {
		validity = auth.DefaultValidity
	}
	return &UserService{
		repos:    m,
		secret:   []byte(secret),
		validity: validity,
		logger:   logger.With("module", "users"),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user, pays the welcome bonus and returns a session.
// A taken email yields common.ErrEmailTaken, a taken username
// common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if _, err := s.repos.Users().GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	account := &servermodels.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         common.RoleUser,
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	var balance int64
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if _, err := repos.Users.Create(ctx, account); err != nil {
			return err
		}
		var err error
		balance, err = award(ctx, repos, account.ID, WelcomeBonus, ReasonWelcome, now)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Either a concurrent registration took the email or the
			// username clashes.
			if _, lookupErr := s.repos.Users().GetByEmail(ctx, email); lookupErr == nil {
				return nil, common.ErrEmailTaken
			}
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", account.ID)
	return s.session(account, balance)
}

// Login checks the password and returns a session. An unknown email yields
// common.ErrUserNotFound, a wrong password common.ErrInvalidPassword.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	account, err := s.repos.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := cryptox.CheckPassword(account.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, common.ErrInvalidPassword
		}
		return nil, fmt.Errorf("check password: %w", err)
	}

	account.LastLoginAt = s.now()
	if err := s.repos.Users().TouchLastLogin(ctx, account.ID, account.LastLoginAt); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}

	balance, err := s.repos.Ledger().Balance(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", account.ID)
	return s.session(account, balance)
}

// Me returns the public view of the user behind a verified token.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	account, err := s.repos.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.repos.Ledger().Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account.Public(balance), nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	account, err := s.repos.Users().GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return account.Role == common.RoleAdmin, nil
}

func (s *UserService) session(account *servermodels.Account, balance int64) (*models.AuthResponse, error) {
	token, err := auth.GenerateToken(account.ID, account.Email, s.secret, s.validity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{User: account.Public(balance), Token: token}, nil
}
