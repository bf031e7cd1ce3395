package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// PushSubscriptionRepository handles database operations for the
// push_subscriptions table
type PushSubscriptionRepository struct {
	db DB
}

// NewPushSubscriptionRepository creates a new PushSubscriptionRepository
func NewPushSubscriptionRepository(db DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

// GetAll retrieves every registered push subscription. An empty table
// yields an empty slice, not an error.
func (r *PushSubscriptionRepository) GetAll() ([]models.PushSubscription, error) {
	query := `
		SELECT id, endpoint, p256dh, auth, created_at, updated_at
		FROM push_subscriptions
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch push subscriptions: %w", err)
	}
	defer rows.Close()

	subscriptions := []models.PushSubscription{}
	for rows.Next() {
		var sub models.PushSubscription
		err := rows.Scan(&sub.ID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	return subscriptions, rows.Err()
}

// Upsert inserts a subscription or, if the endpoint is already known,
// overwrites its keys (last write wins).
func (r *PushSubscriptionRepository) Upsert(endpoint, p256dh, auth string) (*models.PushSubscription, error) {
	sub := &models.PushSubscription{
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}

	query := `
		INSERT INTO push_subscriptions (id, endpoint, p256dh, auth)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (endpoint) DO UPDATE
		SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(query, uuid.New().String(), endpoint, p256dh, auth).
		Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert push subscription: %w", err)
	}

	return sub, nil
}

// DeleteByIDs removes subscriptions in a single batch statement. Used
// by the notification service to prune endpoints the push transport
// reported as gone.
func (r *PushSubscriptionRepository) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.db.Exec(`DELETE FROM push_subscriptions WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete push subscriptions: %w", err)
	}

	return nil
}

// DeleteByEndpoint removes a single subscription when a device opts out
func (r *PushSubscriptionRepository) DeleteByEndpoint(endpoint string) error {
	result, err := r.db.Exec(`DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
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
