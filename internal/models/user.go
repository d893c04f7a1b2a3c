package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin panel roles, from most to least privileged.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRole reports whether role is one of the three admin roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin || role == RoleStaff
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminUser is the display-only mirror row shown on the settings page.
// user_roles stays authoritative for authorization.
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
