package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/internal/pricing"
)

// QuoteHandler serves the public route catalogue and price quotes
type QuoteHandler struct {
	routeRepo *database.RouteRepository
	engine    *pricing.Engine
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(routeRepo *database.RouteRepository, engine *pricing.Engine) *QuoteHandler {
	return &QuoteHandler{
		routeRepo: routeRepo,
		engine:    engine,
	}
}

// QuoteRequest is the public quote payload
type QuoteRequest struct {
	Pickup   string          `json:"pickup"`
	Dropoff  string          `json:"dropoff"`
	Vehicle  models.Vehicle  `json:"vehicle" binding:"required"`
	TripType models.TripType `json:"trip_type" binding:"required"`
	Hours    int             `json:"hours"`
}

// GetRoutes lists all routes for the booking form
// GET /api/v1/routes
func (h *QuoteHandler) GetRoutes(c *gin.Context) {
	routes, err := h.routeRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetLocations lists the known location names. With ?pickup=X the
// response also carries the dropoffs reachable from X.
// GET /api/v1/locations
func (h *QuoteHandler) GetLocations(c *gin.Context) {
	routes, err := h.routeRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
		return
	}

	response := gin.H{
		"locations": pricing.Locations(routes),
		"pickups":   pricing.PickupLocations(routes),
	}

	if pickup := c.Query("pickup"); pickup != "" {
		response["dropoffs"] = pricing.AvailableDropoffs(routes, pickup)
	}

	c.JSON(http.StatusOK, response)
}

// Quote resolves a price for a pickup/dropoff/vehicle/trip selection.
// An unpriceable combination is a normal response with a null price,
// not an error: the caller renders it as "price not available".
// POST /api/v1/quote
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if !req.Vehicle.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown vehicle class"})
		return
	}
	if !req.TripType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown trip type"})
		return
	}

	// A storage failure degrades to an empty snapshot: every
	// route-dependent quote resolves to "no price" rather than a 500.
	routes, err := h.routeRepo.GetAll()
	if err != nil {
		routes = []models.Route{}
	}

	price := h.engine.ComputePrice(routes, req.Pickup, req.Dropoff, req.Vehicle, req.TripType, req.Hours)

	c.JSON(http.StatusOK, gin.H{
		"price":          price,
		"currency":       "MAD",
		"has_round_trip": pricing.HasRoundTrip(routes, req.Pickup, req.Dropoff),
	})
}
