package models

import (
	"time"
)

// Booking status values. Status is the only mutable field after
// creation; the price is fixed at quote time and never recomputed.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
)

// ValidBookingStatus reports whether s is an accepted status value.
func ValidBookingStatus(s string) bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}

// Booking is a confirmed quote submitted by a passenger.
type Booking struct {
	ID            string   `json:"id" db:"id"`
	PassengerName string   `json:"passenger_name" db:"passenger_name"`
	Phone         string   `json:"phone" db:"phone"`
	Email         *string  `json:"email,omitempty" db:"email"`
	Pickup        string   `json:"pickup" db:"pickup"`
	Dropoff       *string  `json:"dropoff,omitempty" db:"dropoff"`
	Vehicle       Vehicle  `json:"vehicle" db:"vehicle"`
	TripType      TripType `json:"trip_type" db:"trip_type"`
	Hours         *int     `json:"hours,omitempty" db:"hours"`
	PickupTime    string   `json:"pickup_time" db:"pickup_time"`
	Price         int      `json:"price" db:"price"`
	Status        string   `json:"status" db:"status"`

	// RoomOrPassengers carries either a hotel room number or a
	// passenger count, as free text from the booking form.
	RoomOrPassengers *string `json:"room_or_passengers,omitempty" db:"room_or_passengers"`
	Comment          *string `json:"comment,omitempty" db:"comment"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reference returns the short booking reference shown to passengers
// (first 8 characters of the id, upper-cased).
func (b *Booking) Reference() string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	upper := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper[i] = c
	}
	return string(upper)
}

// CreateBookingRequest is the public booking form payload.
type CreateBookingRequest struct {
	PassengerName    string   `json:"passenger_name" binding:"required"`
	Phone            string   `json:"phone" binding:"required,min=8"`
	Email            string   `json:"email"`
	Pickup           string   `json:"pickup" binding:"required"`
	Dropoff          string   `json:"dropoff"`
	Vehicle          Vehicle  `json:"vehicle" binding:"required"`
	TripType         TripType `json:"trip_type" binding:"required"`
	Hours            int      `json:"hours"`
	PickupTime       string   `json:"pickup_time" binding:"required"`
	RoomOrPassengers string   `json:"room_or_passengers" binding:"required"`
	Comment          string   `json:"comment"`
}

// UpdateBookingStatusRequest is the admin payload for status changes.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
