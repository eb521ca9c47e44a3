package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains registration data
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
}

// LogoutInput identifies the session being closed
type LogoutInput struct {
	UserID  uuid.UUID
	TokenID string
	// ExpiresAt bounds how long the revoked token must stay blacklisted
	ExpiresAt time.Time
}

// RefreshTokenInput carries a refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// UserInfo is the user representation returned to adapters
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// AuthResult is returned by Register, Login and RefreshToken
type AuthResult struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
	User                  UserInfo  `json:"user"`
}
