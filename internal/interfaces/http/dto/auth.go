package dto

import (
	"time"

	"github.com/finman/backend/internal/application/identity"
)

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the payload for authenticating
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for rotating a token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the wire representation of the authenticated user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse carries a token pair and its owner
type AuthResponse struct {
	AccessToken           string       `json:"accessToken"`
	RefreshToken          string       `json:"refreshToken"`
	TokenType             string       `json:"tokenType"`
	AccessTokenExpiresAt  time.Time    `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
	User                  UserResponse `json:"user"`
}

// FromAuthResult maps an authentication result to the wire shape
func FromAuthResult(r *identity.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken:           r.AccessToken,
		RefreshToken:          r.RefreshToken,
		TokenType:             r.TokenType,
		AccessTokenExpiresAt:  r.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
		User: UserResponse{
			ID:       r.User.ID.String(),
			Username: r.User.Username,
			Email:    r.User.Email,
		},
	}
}
