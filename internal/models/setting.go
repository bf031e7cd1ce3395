package models

import (
	"time"
)

// Setting keys used by the application.
const (
	SettingWhatsAppNumber = "whatsapp_number"
)

// Setting is a process-wide key/value configuration row editable from
// the admin dashboard.
type Setting struct {
	ID        string    `json:"id" db:"id"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateSettingRequest is the admin payload for updating a setting.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
