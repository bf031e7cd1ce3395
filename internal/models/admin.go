package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a dashboard operator account. Passwords are stored as
// bcrypt hashes only.
type AdminUser struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// AdminSession records a successful dashboard login for auditing.
type AdminSession struct {
	ID         string    `json:"id" db:"id"`
	AdminID    uuid.UUID `json:"admin_id" db:"admin_id"`
	IPAddress  string    `json:"ip_address" db:"ip_address"`
	DeviceType string    `json:"device_type" db:"device_type"`
	OS         string    `json:"os" db:"os"`
	Browser    string    `json:"browser" db:"browser"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for session renewal.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
