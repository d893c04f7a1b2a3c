package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// VerifyAdminResponse is the authorization verdict for the admin shell.
// isAdmin is false on every negative or failed path.
type VerifyAdminResponse struct {
	IsAdmin bool      `json:"isAdmin"`
	Role    *string   `json:"role"`
	UserID  uuid.UUID `json:"userId"`
	Email   string    `json:"email"`
}

type SetupOwnerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type CreatedUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type ProvisionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    CreatedUser `json:"user"`
}
