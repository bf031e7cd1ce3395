package models

import (
	"time"
)

// Route represents a priced pickup → dropoff corridor.
// (pickup, dropoff) is unique and directional: Casablanca → Marrakech
// and Marrakech → Casablanca are separate rows.
type Route struct {
	ID      string `json:"id" db:"id"`
	Pickup  string `json:"pickup" db:"pickup"`
	Dropoff string `json:"dropoff" db:"dropoff"`

	// OneWay holds the mandatory one-way price per vehicle class, in
	// Moroccan dirham (whole MAD, no minor units).
	OneWay map[Vehicle]int `json:"one_way"`

	// RoundTrip holds the optional round-trip price per vehicle class.
	// A nil entry means round trip is not offered for that vehicle on
	// this route; it is never derived from the one-way price.
	RoundTrip map[Vehicle]*int `json:"round_trip"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RouteRequest is the admin payload for creating or updating a route.
type RouteRequest struct {
	Pickup    string           `json:"pickup" binding:"required"`
	Dropoff   string           `json:"dropoff" binding:"required"`
	OneWay    map[Vehicle]int  `json:"one_way" binding:"required"`
	RoundTrip map[Vehicle]*int `json:"round_trip"`
}

// Validate checks that every supported vehicle has a one-way price and
// that no price is negative.
func (r *RouteRequest) Validate() string {
	if r.Pickup == r.Dropoff {
		return "pickup and dropoff must differ"
	}
	for _, v := range Vehicles() {
		price, ok := r.OneWay[v]
		if !ok {
			return "missing one-way price for vehicle " + string(v)
		}
		if price < 0 {
			return "negative one-way price for vehicle " + string(v)
		}
	}
	for v, price := range r.RoundTrip {
		if !v.Valid() {
			return "unknown vehicle " + string(v) + " in round-trip prices"
		}
		if price != nil && *price < 0 {
			return "negative round-trip price for vehicle " + string(v)
		}
	}
	return ""
}
