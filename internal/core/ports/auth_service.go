package ports

import (
	"context"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
)

// RegisterInput carries validated registration data. Role is already
// defaulted to WORKER by the transport layer when the client omits it.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// TokenPair is the result of a successful credential exchange. Username
// and Role are returned in plaintext alongside the tokens so clients can
// read them without decoding the JWT.
type TokenPair struct {
	Access   string
	Refresh  string
	Username string
	Role     domain.Role
}

// AuthService defines registration and token issuance use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh exchanges a valid, non-revoked refresh token for a new
	// access token. The new token reflects the user's role as currently
	// stored. The refresh token itself stays valid until expiry.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes a refresh token so it can no longer be exchanged.
	Logout(ctx context.Context, refreshToken string) error
}

// TokenDenylist tracks revoked refresh-token ids until they would have
// expired anyway.
type TokenDenylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}
