package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// AdminSessionRepository handles database operations for the
// admin_sessions audit table
type AdminSessionRepository struct {
	db DB
}

// NewAdminSessionRepository creates a new AdminSessionRepository
func NewAdminSessionRepository(db DB) *AdminSessionRepository {
	return &AdminSessionRepository{db: db}
}

// Create records a successful admin login
func (r *AdminSessionRepository) Create(session *models.AdminSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	query := `
		INSERT INTO admin_sessions (id, admin_id, ip_address, device_type, os, browser, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		query,
		session.ID, session.AdminID, session.IPAddress,
		session.DeviceType, session.OS, session.Browser, session.UserAgent,
	).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record admin session: %w", err)
	}

	return nil
}

// GetRecentByAdmin lists the latest sessions for an admin account
func (r *AdminSessionRepository) GetRecentByAdmin(adminID uuid.UUID, limit int) ([]models.AdminSession, error) {
	query := `
		SELECT id, admin_id, ip_address, device_type, os, browser, user_agent, created_at
		FROM admin_sessions
		WHERE admin_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, adminID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.AdminSession{}
	for rows.Next() {
		var s models.AdminSession
		err := rows.Scan(&s.ID, &s.AdminID, &s.IPAddress, &s.DeviceType, &s.OS, &s.Browser, &s.UserAgent, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
