package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, passenger_name, phone, email, pickup, dropoff,
	vehicle, trip_type, hours, pickup_time, price, status,
	room_or_passengers, comment, created_at
`

// Create inserts a new booking. The price must already be resolved by
// the pricing engine; it is never recomputed after this point.
func (r *BookingRepository) Create(booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}

	query := `
		INSERT INTO bookings (
			id, passenger_name, phone, email, pickup, dropoff,
			vehicle, trip_type, hours, pickup_time, price, status,
			room_or_passengers, comment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		query,
		booking.ID, booking.PassengerName, booking.Phone, booking.Email,
		booking.Pickup, booking.Dropoff, booking.Vehicle, booking.TripType,
		booking.Hours, booking.PickupTime, booking.Price, booking.Status,
		booking.RoomOrPassengers, booking.Comment,
	).Scan(&booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	return scanBooking(rows)
}

// GetAll retrieves all bookings, newest first
func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// UpdateStatus changes a booking's status
func (r *BookingRepository) UpdateStatus(bookingID, status string) error {
	result, err := r.db.Exec(`UPDATE bookings SET status = $1 WHERE id = $2`, status, bookingID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
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

// Delete removes a booking
func (r *BookingRepository) Delete(bookingID string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
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

func scanBooking(rows *sql.Rows) (*models.Booking, error) {
	booking := &models.Booking{}
	var email, dropoff, roomOrPassengers, comment sql.NullString
	var hours sql.NullInt64

	err := rows.Scan(
		&booking.ID, &booking.PassengerName, &booking.Phone, &email,
		&booking.Pickup, &dropoff, &booking.Vehicle, &booking.TripType,
		&hours, &booking.PickupTime, &booking.Price, &booking.Status,
		&roomOrPassengers, &comment, &booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		booking.Email = &email.String
	}
	if dropoff.Valid {
		booking.Dropoff = &dropoff.String
	}
	if hours.Valid {
		h := int(hours.Int64)
		booking.Hours = &h
	}
	if roomOrPassengers.Valid {
		booking.RoomOrPassengers = &roomOrPassengers.String
	}
	if comment.Valid {
		booking.Comment = &comment.String
	}

	return booking, nil
}
