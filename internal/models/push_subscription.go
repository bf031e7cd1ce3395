package models

import (
	"time"
)

// PushSubscription is a device's Web Push delivery endpoint plus the
// two keys the push service needs for payload encryption. The endpoint
// URL is unique; re-subscribing from the same device overwrites the
// stored keys (last write wins).
type PushSubscription struct {
	ID        string    `json:"id" db:"id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SubscribeRequest mirrors the browser PushSubscription JSON shape.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

// UnsubscribeRequest identifies the subscription to remove.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
