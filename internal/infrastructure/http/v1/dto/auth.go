package dto

import (
	"time"

	"freightdesk/internal/domain/auth"
)

// RegisterRequest for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// LoginRequest for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// NewUserResponse projects a user.
func NewUserResponse(u *auth.User) UserResponse {
	return UserResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		IsAdmin: u.IsAdmin,
	}
}

// LoginResponse carries tokens plus the authenticated user.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	TokenType    string       `json:"tokenType"`
	User         UserResponse `json:"user"`
}

// NewLoginResponse assembles a login response.
func NewLoginResponse(tokens *auth.TokenPair, user *auth.User) LoginResponse {
	return LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		TokenType:    tokens.TokenType,
		User:         NewUserResponse(user),
	}
}
