package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullOneWay() map[Vehicle]int {
	return map[Vehicle]int{
		VehicleVito:    1500,
		VehicleDacia:   1100,
		VehicleOctavia: 1200,
		VehicleKaroq:   1400,
	}
}

func TestRouteRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := &RouteRequest{Pickup: "Casablanca", Dropoff: "Marrakech", OneWay: fullOneWay()}
		assert.Empty(t, req.Validate())
	})

	t.Run("Pickup Equals Dropoff", func(t *testing.T) {
		req := &RouteRequest{Pickup: "Casablanca", Dropoff: "Casablanca", OneWay: fullOneWay()}
		assert.Contains(t, req.Validate(), "must differ")
	})

	t.Run("Missing One Way Price", func(t *testing.T) {
		oneWay := fullOneWay()
		delete(oneWay, VehicleKaroq)
		req := &RouteRequest{Pickup: "Casablanca", Dropoff: "Marrakech", OneWay: oneWay}
		assert.Contains(t, req.Validate(), "missing one-way price")
	})

	t.Run("Negative Price", func(t *testing.T) {
		oneWay := fullOneWay()
		oneWay[VehicleDacia] = -1
		req := &RouteRequest{Pickup: "Casablanca", Dropoff: "Marrakech", OneWay: oneWay}
		assert.Contains(t, req.Validate(), "negative one-way price")
	})

	t.Run("Unknown Round Trip Vehicle", func(t *testing.T) {
		price := 2500
		req := &RouteRequest{
			Pickup:    "Casablanca",
			Dropoff:   "Marrakech",
			OneWay:    fullOneWay(),
			RoundTrip: map[Vehicle]*int{Vehicle("Limousine"): &price},
		}
		assert.Contains(t, req.Validate(), "unknown vehicle")
	})
}

func TestBookingReference(t *testing.T) {
	booking := &Booking{ID: "ab12cd34-5678-90ef-1234-567890abcdef"}
	assert.Equal(t, "AB12CD34", booking.Reference())

	short := &Booking{ID: "ab"}
	assert.Equal(t, "AB", short.Reference())
}

func TestVehicleValid(t *testing.T) {
	for _, v := range Vehicles() {
		assert.True(t, v.Valid())
	}
	assert.False(t, Vehicle("Limousine").Valid())
	assert.False(t, Vehicle("").Valid())
}

func TestTripTypeValid(t *testing.T) {
	assert.True(t, TripOneWay.Valid())
	assert.True(t, TripRoundTrip.Valid())
	assert.True(t, TripHourly.Valid())
	assert.False(t, TripType("return").Valid())
}
