package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sportmeet/server/internal/auth"
)

type Service struct {
	repo   Repository
	tokens *auth.JWTManager
	logger zerolog.Logger
}

func NewService(repo Repository, tokens *auth.JWTManager, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Summary is the user shape exposed to API consumers. The password hash never
// leaves the domain layer.
type Summary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	User  Summary
	Token string
}

// Register creates a new account. It pre-checks the email as an optimization,
// but the database unique index is the guard that holds under concurrent
// registrations. Registration does not log the user in.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Summary, error) {
	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, CreateParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return &Summary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password both report ErrInvalidCredentials so responses do not reveal
// which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &LoginResult{
		User:  Summary{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	}, nil
}
