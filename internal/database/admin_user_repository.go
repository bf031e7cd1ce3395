package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// AdminUserRepository handles database operations for the admin_users table
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByUsername retrieves an admin account by username
func (r *AdminUserRepository) GetByUsername(username string) (*models.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, last_login_at, created_at
		FROM admin_users
		WHERE username = $1
	`

	var admin models.AdminUser
	var lastLogin sql.NullTime

	err := r.db.QueryRow(query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&lastLogin,
		&admin.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		admin.LastLoginAt = &lastLogin.Time
	}

	return &admin, nil
}

// Create inserts an admin account. The password must already be
// bcrypt-hashed by the caller.
func (r *AdminUserRepository) Create(username, passwordHash string) (*models.AdminUser, error) {
	admin := &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	query := `
		INSERT INTO admin_users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(query, admin.ID, admin.Username, admin.PasswordHash).Scan(&admin.CreatedAt)
	if err != nil {
		return nil, err
	}

	return admin, nil
}

// UpdateLastLogin records a successful login timestamp
func (r *AdminUserRepository) UpdateLastLogin(adminID uuid.UUID) error {
	_, err := r.db.Exec(`UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, adminID)
	return err
}
