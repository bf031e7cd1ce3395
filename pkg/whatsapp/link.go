// Package whatsapp builds the wa.me handoff link passengers use to
// confirm a booking with the operator.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/moroccotransfers/booking-backend/internal/models"
)

// Link returns the wa.me URL for the operator number with a prefilled
// booking summary. number is stored without the leading plus, e.g.
// "212600000000".
func Link(number string, booking *models.Booking) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", sanitizeNumber(number), url.QueryEscape(Message(booking)))
}

// Message returns the plain-text confirmation message for a booking.
func Message(booking *models.Booking) string {
	route := booking.Pickup
	if booking.Dropoff != nil && *booking.Dropoff != "" {
		route += " → " + *booking.Dropoff
	}

	var b strings.Builder
	b.WriteString("Hello Morocco Transfers!\n\n")
	fmt.Fprintf(&b, "Booking Ref: %s\n", booking.Reference())
	fmt.Fprintf(&b, "Name: %s\n", booking.PassengerName)
	fmt.Fprintf(&b, "Route: %s\n", route)
	fmt.Fprintf(&b, "Vehicle: %s\n", booking.Vehicle)
	if booking.TripType == models.TripHourly && booking.Hours != nil {
		fmt.Fprintf(&b, "Duration: %dh\n", *booking.Hours)
	}
	fmt.Fprintf(&b, "Price: %d DH\n\n", booking.Price)
	b.WriteString("I'd like to confirm my booking.")
	return b.String()
}

// sanitizeNumber strips everything but digits so stored values like
// "+212 600-000000" still produce a valid wa.me URL.
func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
