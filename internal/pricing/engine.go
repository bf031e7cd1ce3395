// Package pricing resolves a passenger's pickup/dropoff/vehicle/trip
// selection into a price against an in-memory snapshot of the route
// table. It is pure: no storage access, no side effects, safe for
// concurrent use.
package pricing

import (
	"sort"

	"github.com/moroccotransfers/booking-backend/internal/models"
)

// HourlyVehicle is the only vehicle class offered for hourly service.
const HourlyVehicle = models.VehicleVito

// Engine holds the pricing configuration that is not part of the route
// table.
type Engine struct {
	// HourlyRate is the flat MAD-per-hour rate for hourly bookings.
	HourlyRate int
	// HourlyOrigin is the fixed pickup area for hourly service; the
	// passenger's free-text location never affects the price.
	HourlyOrigin string
}

// NewEngine creates a pricing engine
func NewEngine(hourlyRate int, hourlyOrigin string) *Engine {
	return &Engine{HourlyRate: hourlyRate, HourlyOrigin: hourlyOrigin}
}

// ComputePrice resolves a quote. A nil result means "no price for this
// combination" and must be shown as quote-unavailable, never as zero.
//
// Rules, in order:
//  1. hourly: hours >= 1 required, price = hours * HourlyRate; the
//     route table, pickup and dropoff are ignored.
//  2. pickup and dropoff must be non-empty and distinct.
//  3. the route must exist for exactly (pickup, dropoff); matching is
//     directional, the reverse corridor is a separate row.
//  4. round_trip: the per-vehicle round-trip price must be set
//     explicitly; it is never derived from the one-way price.
//  5. one_way: the per-vehicle one-way price (always present once the
//     route exists).
func (e *Engine) ComputePrice(routes []models.Route, pickup, dropoff string, vehicle models.Vehicle, tripType models.TripType, hours int) *int {
	if tripType == models.TripHourly {
		if hours < 1 {
			return nil
		}
		price := hours * e.HourlyRate
		return &price
	}

	if pickup == "" || dropoff == "" || pickup == dropoff {
		return nil
	}

	route := findRoute(routes, pickup, dropoff)
	if route == nil {
		return nil
	}

	if tripType == models.TripRoundTrip {
		return route.RoundTrip[vehicle]
	}

	price, ok := route.OneWay[vehicle]
	if !ok {
		return nil
	}
	return &price
}

// HasRoundTrip reports whether the (pickup, dropoff) corridor offers a
// round trip for at least one vehicle class.
func HasRoundTrip(routes []models.Route, pickup, dropoff string) bool {
	route := findRoute(routes, pickup, dropoff)
	if route == nil {
		return false
	}
	for _, price := range route.RoundTrip {
		if price != nil {
			return true
		}
	}
	return false
}

// Locations returns every pickup and dropoff name in the snapshot,
// sorted and deduplicated.
func Locations(routes []models.Route) []string {
	set := map[string]struct{}{}
	for _, r := range routes {
		set[r.Pickup] = struct{}{}
		set[r.Dropoff] = struct{}{}
	}
	return sortedKeys(set)
}

// PickupLocations returns every distinct pickup name, sorted.
func PickupLocations(routes []models.Route) []string {
	set := map[string]struct{}{}
	for _, r := range routes {
		set[r.Pickup] = struct{}{}
	}
	return sortedKeys(set)
}

// AvailableDropoffs returns the dropoffs reachable from a pickup, sorted.
func AvailableDropoffs(routes []models.Route, pickup string) []string {
	if pickup == "" {
		return []string{}
	}
	set := map[string]struct{}{}
	for _, r := range routes {
		if r.Pickup == pickup {
			set[r.Dropoff] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func findRoute(routes []models.Route, pickup, dropoff string) *models.Route {
	for i := range routes {
		if routes[i].Pickup == pickup && routes[i].Dropoff == dropoff {
			return &routes[i]
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
