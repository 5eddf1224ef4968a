package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"designvault/api/internal/apperr"
	"designvault/api/internal/config"
	"designvault/api/internal/ids"
	"designvault/api/internal/models"
	"designvault/api/internal/repository"
	"designvault/api/internal/security"
)

type AuthService struct {
	users repository.UserRepository
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users repository.UserRepository, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log.With().Str("service", "auth").Logger(),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, apperr.Validation("Username, email, and password are required")
	}

	role := models.UserRole(input.Role)
	if role == "" {
		role = models.UserRoleDesigner
	}
	if !models.ValidRole(role) {
		return AuthResult{}, apperr.Validation("Invalid role")
	}

	if _, err := s.users.FindByEmailOrUsername(ctx, input.Email, input.Username); err == nil {
		return AuthResult{}, apperr.Conflict("User already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, apperr.Internal(err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, apperr.Internal(err)
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, apperr.Internal(err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	return s.issueToken(user)
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Email == "" || input.Password == "" {
		return AuthResult{}, apperr.Validation("Email and password are required")
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller, so both paths share one error.
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperr.Auth("Invalid credentials")
		}
		return AuthResult{}, apperr.Internal(err)
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apperr.Auth("Invalid credentials")
	}

	return s.issueToken(user)
}

// CurrentUser resolves a bearer token to its user. Used by the auth
// middleware and the /me and /verify routes.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (models.User, error) {
	if tokenStr == "" {
		return models.User{}, apperr.Auth("No token provided")
	}

	claims, err := security.ParseSessionToken(tokenStr, s.cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, apperr.Auth("Invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apperr.Auth("User not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user models.User) (AuthResult, error) {
	token, err := security.GenerateSessionToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		user.Username,
		string(user.Role),
		s.cfg.Security.SessionTTL,
	)
	if err != nil {
		return AuthResult{}, apperr.Internal(err)
	}

	return AuthResult{Token: token, User: user}, nil
}
