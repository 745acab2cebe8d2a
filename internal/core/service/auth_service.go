package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
	"github.com/fullstacktime/project-tracker/internal/pkg/token"
)

const minPasswordLength = 6

// AuthService implements registration and token issuance.
type AuthService struct {
	repo     ports.UserRepository
	tokens   *token.Manager
	denylist ports.TokenDenylist
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. denylist may be nil, in which
// case logout is a no-op and revocation is not enforced.
func NewAuthService(repo ports.UserRepository, tokens *token.Manager, denylist ports.TokenDenylist, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, denylist: denylist, log: log}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password never reaches the repository.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleWorker
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be ADMIN or WORKER", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login validates credentials and issues an access/refresh token pair.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.Access(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Refresh(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.TokenPair{
		Access:   access,
		Refresh:  refresh,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The user is
// re-read so the new claims carry the role as currently stored; the
// refresh token stays valid until it expires or is revoked via Logout.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return "", err
		}
		if revoked {
			s.log.Warn().Str("username", claims.Username).Msg("revoked refresh token rejected")
			return "", domain.ErrInvalidCredentials
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Access(user)
}

// Logout revokes a refresh token. Revoking an already-revoked token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseRefresh(refreshToken)
	if err != nil {
		return err
	}
	if s.denylist == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID)
}

func (s *AuthService) parseRefresh(refreshToken string) (*token.Claims, error) {
	claims, err := s.tokens.Parse(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if claims.TokenType != token.TypeRefresh {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}
