package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/internal/pricing"
	"github.com/moroccotransfers/booking-backend/internal/services"
	"github.com/moroccotransfers/booking-backend/pkg/whatsapp"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles the public booking form and the admin booking
// dashboard operations
type BookingHandler struct {
	bookingRepo     *database.BookingRepository
	routeRepo       *database.RouteRepository
	engine          *pricing.Engine
	notificationSvc *services.NotificationService
	settingsCache   *services.SettingsCache
	feed            *services.BookingFeed
	logger          *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	bookingRepo *database.BookingRepository,
	routeRepo *database.RouteRepository,
	engine *pricing.Engine,
	notificationSvc *services.NotificationService,
	settingsCache *services.SettingsCache,
	feed *services.BookingFeed,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingRepo:     bookingRepo,
		routeRepo:       routeRepo,
		engine:          engine,
		notificationSvc: notificationSvc,
		settingsCache:   settingsCache,
		feed:            feed,
		logger:          logger,
	}
}

// Create accepts a booking form submission. The price is resolved
// server-side from the current route snapshot and fixed on the record;
// it is never recomputed afterwards. Push fan-out runs asynchronously
// and can never fail the booking.
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
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
	if req.TripType == models.TripHourly && req.Vehicle != pricing.HourlyVehicle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hourly service is only available with the " + string(pricing.HourlyVehicle)})
		return
	}

	// Hourly bookings carry a free-text pickup location that does not
	// participate in pricing, and their price never consults the route
	// table, so a route storage outage must not reject them.
	var routes []models.Route
	quotePickup := req.Pickup
	quoteDropoff := req.Dropoff
	if req.TripType == models.TripHourly {
		quotePickup = h.engine.HourlyOrigin
		quoteDropoff = ""
	} else {
		var err error
		routes, err = h.routeRepo.GetAll()
		if err != nil {
			h.logger.WithError(err).Error("Failed to load route snapshot")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
			return
		}
	}

	price := h.engine.ComputePrice(routes, quotePickup, quoteDropoff, req.Vehicle, req.TripType, req.Hours)
	if price == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Price not available for this combination",
			"code":  "QUOTE_UNAVAILABLE",
		})
		return
	}

	booking := &models.Booking{
		PassengerName: req.PassengerName,
		Phone:         req.Phone,
		Email:         optionalString(req.Email),
		Pickup:        req.Pickup,
		Vehicle:       req.Vehicle,
		TripType:      req.TripType,
		PickupTime:    req.PickupTime,
		Price:         *price,
		Status:        models.BookingPending,

		RoomOrPassengers: optionalString(req.RoomOrPassengers),
		Comment:          optionalString(req.Comment),
	}
	if req.TripType == models.TripHourly {
		hours := req.Hours
		booking.Hours = &hours
	} else {
		booking.Dropoff = optionalString(req.Dropoff)
	}

	if err := h.bookingRepo.Create(booking); err != nil {
		h.logger.WithError(err).Error("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	h.feed.Publish(services.BookingEvent{Type: services.BookingInserted, ID: booking.ID, Booking: booking})

	// Fire-and-forget fan-out, detached from the request context so
	// in-flight deliveries survive the response being written.
	go func(b models.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if _, err := h.notificationSvc.DeliverBookingNotification(ctx, &b); err != nil {
			h.logger.WithError(err).WithField("booking_id", b.ID).Error("Booking notification fan-out failed")
		}
	}(*booking)

	response := gin.H{"booking": booking}
	if number, err := h.settingsCache.Get(models.SettingWhatsAppNumber); err == nil && number != "" {
		response["whatsapp_url"] = whatsapp.Link(number, booking)
	} else if err != nil {
		h.logger.WithError(err).Warn("WhatsApp number unavailable for confirmation link")
	}

	c.JSON(http.StatusCreated, response)
}

// GetAll lists all bookings, newest first
// GET /api/v1/admin/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings, err := h.bookingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// UpdateStatus changes a booking's status
// PATCH /api/v1/admin/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID := c.Param("id")

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if !models.ValidBookingStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	if err := h.bookingRepo.UpdateStatus(bookingID, req.Status); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking status"})
		return
	}

	booking, err := h.bookingRepo.GetByID(bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated booking"})
		return
	}

	h.feed.Publish(services.BookingEvent{Type: services.BookingUpdated, ID: booking.ID, Booking: booking})

	c.JSON(http.StatusOK, booking)
}

// Delete removes a booking
// DELETE /api/v1/admin/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	bookingID := c.Param("id")

	if err := h.bookingRepo.Delete(bookingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	h.feed.Publish(services.BookingEvent{Type: services.BookingDeleted, ID: bookingID})

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
