package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aether-be/internal/auth"
	"aether-be/internal/logger"
	"aether-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	UpsertAdmin(ctx context.Context, input RegisterInput) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	CreatePlaceholder(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenManager
	now    func() time.Time
}

func NewService(repo Repository, tokens *auth.TokenManager) Service {
	return &service{repo: repo, tokens: tokens, now: time.Now}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info("register rejected, email exists", zap.String("email", email))
		return nil, ErrEmailExists
	case !errors.Is(err, ErrUserNotFound):
		log.Error("failed to look up email", zap.Error(err))
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashed,
		Role:         RoleCustomer,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)
	return &AuthResult{Token: token, User: u}, nil
}

// Login fails with ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Error("failed to look up user", zap.Error(err))
			return nil, err
		}
		// keep the response time close to the wrong-password path
		CheckPasswordHash(password, dummyStoredValue)
		log.Info("login failed")
		return nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login failed")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("login succeeded", zap.String("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) UpsertAdmin(ctx context.Context, input RegisterInput) (*User, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.UpsertByEmail(ctx, &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashed,
		Role:         RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert admin %s: %w", email, err)
	}

	logger.FromCtx(ctx).Info("administrator upserted",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// CreatePlaceholder stores a throwaway customer under the given id. Only
// used by checkout when placeholder users are enabled.
func (s *service) CreatePlaceholder(ctx context.Context, id string) (*User, error) {
	secret, err := HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		ID:           id,
		Email:        fmt.Sprintf("demo_%d@example.com", s.now().UnixNano()),
		Name:         "Demo User",
		PasswordHash: secret,
		Role:         RoleCustomer,
	})
	if err != nil {
		return nil, fmt.Errorf("create placeholder user: %w", err)
	}

	logger.FromCtx(ctx).Warn("placeholder user created",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email),
	)
	return u, nil
}
