package pricing

import (
	"testing"

	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func testRoutes() []models.Route {
	return []models.Route{
		{
			ID:      "route-1",
			Pickup:  "Casablanca",
			Dropoff: "Marrakech",
			OneWay: map[models.Vehicle]int{
				models.VehicleVito:    1500,
				models.VehicleDacia:   1100,
				models.VehicleOctavia: 1200,
				models.VehicleKaroq:   1400,
			},
			RoundTrip: map[models.Vehicle]*int{
				models.VehicleVito:    intPtr(2500),
				models.VehicleDacia:   nil,
				models.VehicleOctavia: nil,
				models.VehicleKaroq:   nil,
			},
		},
		{
			ID:      "route-2",
			Pickup:  "Casablanca",
			Dropoff: "Rabat",
			OneWay: map[models.Vehicle]int{
				models.VehicleVito:    600,
				models.VehicleDacia:   450,
				models.VehicleOctavia: 500,
				models.VehicleKaroq:   550,
			},
			RoundTrip: map[models.Vehicle]*int{
				models.VehicleVito:    nil,
				models.VehicleDacia:   nil,
				models.VehicleOctavia: nil,
				models.VehicleKaroq:   nil,
			},
		},
	}
}

func TestComputePriceOneWay(t *testing.T) {
	engine := NewEngine(200, "Casablanca")
	routes := testRoutes()

	t.Run("Known Route", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Marrakech", models.VehicleVito, models.TripOneWay, 0)
		require.NotNil(t, price)
		assert.Equal(t, 1500, *price)
	})

	t.Run("Each Vehicle Gets Its Own Price", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Marrakech", models.VehicleDacia, models.TripOneWay, 0)
		require.NotNil(t, price)
		assert.Equal(t, 1100, *price)
	})

	t.Run("Unknown Route", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Agadir", models.VehicleVito, models.TripOneWay, 0)
		assert.Nil(t, price)
	})

	t.Run("Reverse Direction Is A Separate Corridor", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Marrakech", "Casablanca", models.VehicleVito, models.TripOneWay, 0)
		assert.Nil(t, price)
	})

	t.Run("Identical Pickup And Dropoff", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Casablanca", models.VehicleVito, models.TripOneWay, 0)
		assert.Nil(t, price)
	})

	t.Run("Empty Pickup Or Dropoff", func(t *testing.T) {
		assert.Nil(t, engine.ComputePrice(routes, "", "Marrakech", models.VehicleVito, models.TripOneWay, 0))
		assert.Nil(t, engine.ComputePrice(routes, "Casablanca", "", models.VehicleVito, models.TripOneWay, 0))
	})

	t.Run("Empty Route Snapshot", func(t *testing.T) {
		price := engine.ComputePrice([]models.Route{}, "Casablanca", "Marrakech", models.VehicleVito, models.TripOneWay, 0)
		assert.Nil(t, price)
	})
}

func TestComputePriceRoundTrip(t *testing.T) {
	engine := NewEngine(200, "Casablanca")
	routes := testRoutes()

	t.Run("Explicit Round Trip Price", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Marrakech", models.VehicleVito, models.TripRoundTrip, 0)
		require.NotNil(t, price)
		assert.Equal(t, 2500, *price)
	})

	t.Run("No Round Trip For This Vehicle", func(t *testing.T) {
		// Never derived from the one-way price.
		price := engine.ComputePrice(routes, "Casablanca", "Marrakech", models.VehicleDacia, models.TripRoundTrip, 0)
		assert.Nil(t, price)
	})

	t.Run("Route Without Any Round Trip", func(t *testing.T) {
		price := engine.ComputePrice(routes, "Casablanca", "Rabat", models.VehicleVito, models.TripRoundTrip, 0)
		assert.Nil(t, price)
	})
}

func TestComputePriceHourly(t *testing.T) {
	engine := NewEngine(200, "Casablanca")

	t.Run("Rate Times Hours", func(t *testing.T) {
		price := engine.ComputePrice(nil, "Casablanca", "", models.VehicleVito, models.TripHourly, 4)
		require.NotNil(t, price)
		assert.Equal(t, 800, *price)
	})

	t.Run("Route Table Is Ignored", func(t *testing.T) {
		price := engine.ComputePrice(testRoutes(), "Anywhere", "Anywhere", models.VehicleVito, models.TripHourly, 2)
		require.NotNil(t, price)
		assert.Equal(t, 400, *price)
	})

	t.Run("Zero Or Negative Hours", func(t *testing.T) {
		assert.Nil(t, engine.ComputePrice(nil, "Casablanca", "", models.VehicleVito, models.TripHourly, 0))
		assert.Nil(t, engine.ComputePrice(nil, "Casablanca", "", models.VehicleVito, models.TripHourly, -1))
	})
}

func TestHasRoundTrip(t *testing.T) {
	routes := testRoutes()

	t.Run("Any Vehicle Counts", func(t *testing.T) {
		assert.True(t, HasRoundTrip(routes, "Casablanca", "Marrakech"))
	})

	t.Run("No Vehicle Offers It", func(t *testing.T) {
		assert.False(t, HasRoundTrip(routes, "Casablanca", "Rabat"))
	})

	t.Run("Unknown Route", func(t *testing.T) {
		assert.False(t, HasRoundTrip(routes, "Agadir", "Marrakech"))
	})
}

func TestLocationHelpers(t *testing.T) {
	routes := testRoutes()

	t.Run("Locations Sorted And Deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{"Casablanca", "Marrakech", "Rabat"}, Locations(routes))
	})

	t.Run("Pickup Locations", func(t *testing.T) {
		assert.Equal(t, []string{"Casablanca"}, PickupLocations(routes))
	})

	t.Run("Available Dropoffs", func(t *testing.T) {
		assert.Equal(t, []string{"Marrakech", "Rabat"}, AvailableDropoffs(routes, "Casablanca"))
		assert.Empty(t, AvailableDropoffs(routes, "Agadir"))
		assert.Empty(t, AvailableDropoffs(routes, ""))
	})
}
