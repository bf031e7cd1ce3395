package database

import (
	"database/sql"

	"github.com/moroccotransfers/booking-backend/internal/models"
)

// SettingRepository handles database operations for the settings table
type SettingRepository struct {
	db DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetAll retrieves all settings
func (r *SettingRepository) GetAll() ([]models.Setting, error) {
	query := `
		SELECT id, key, value, updated_at
		FROM settings
		ORDER BY key
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

// GetByKey retrieves a setting by its key
func (r *SettingRepository) GetByKey(key string) (*models.Setting, error) {
	query := `
		SELECT id, key, value, updated_at
		FROM settings
		WHERE key = $1
	`

	var setting models.Setting
	err := r.db.QueryRow(query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// Update updates a setting's value
func (r *SettingRepository) Update(key, value string) error {
	query := `
		UPDATE settings
		SET value = $1, updated_at = NOW()
		WHERE key = $2
	`

	result, err := r.db.Exec(query, value, key)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
