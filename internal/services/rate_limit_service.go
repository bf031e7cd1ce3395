package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/moroccotransfers/booking-backend/internal/database"
)

// RateLimitService throttles admin login attempts per username and per
// source IP, backed by the login_attempts table.
type RateLimitService struct {
	db database.DB

	maxAttempts int
	window      time.Duration
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(db database.DB, maxAttempts int, window time.Duration) *RateLimitService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimitService{
		db:          db,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "username" or "ip"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CheckLoginRateLimit returns a RateLimitError when the username or IP
// has too many recent failed attempts.
func (s *RateLimitService) CheckLoginRateLimit(username, ip string) error {
	for _, check := range []struct {
		identifier string
		kind       string
	}{
		{username, "username"},
		{ip, "ip"},
	} {
		if check.identifier == "" {
			continue
		}

		count, lastAttempt, err := s.getAttemptCount(check.identifier, check.kind)
		if err != nil {
			return fmt.Errorf("failed to check %s rate limit: %w", check.kind, err)
		}

		if count >= s.maxAttempts {
			retryAfter := lastAttempt.Add(s.window)
			return &RateLimitError{
				Message:    fmt.Sprintf("Too many login attempts. Please try again after %s", retryAfter.Format("15:04:05")),
				RetryAfter: retryAfter,
				Type:       check.kind,
			}
		}
	}

	return nil
}

// RecordFailedLogin records a failed login attempt for both identifiers
func (s *RateLimitService) RecordFailedLogin(username, ip string) error {
	for _, rec := range []struct {
		identifier string
		kind       string
	}{
		{username, "username"},
		{ip, "ip"},
	} {
		if rec.identifier == "" {
			continue
		}
		_, err := s.db.Exec(
			`INSERT INTO login_attempts (identifier, identifier_type) VALUES ($1, $2)`,
			rec.identifier, rec.kind,
		)
		if err != nil {
			return fmt.Errorf("failed to record login attempt: %w", err)
		}
	}
	return nil
}

// PruneOldAttempts deletes attempt rows older than the cutoff. Run
// periodically by the cron service.
func (s *RateLimitService) PruneOldAttempts(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.Exec(`DELETE FROM login_attempts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune login attempts: %w", err)
	}

	return result.RowsAffected()
}

func (s *RateLimitService) getAttemptCount(identifier, identifierType string) (int, time.Time, error) {
	windowStart := time.Now().Add(-s.window)

	query := `
		SELECT COUNT(*), COALESCE(MAX(created_at), NOW())
		FROM login_attempts
		WHERE identifier = $1
		  AND identifier_type = $2
		  AND created_at > $3
	`

	var count int
	var lastAttempt time.Time

	err := s.db.QueryRow(query, identifier, identifierType, windowStart).Scan(&count, &lastAttempt)
	if err != nil && err != sql.ErrNoRows {
		return 0, time.Time{}, err
	}

	return count, lastAttempt, nil
}
