package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// PushSubscriptionHandler manages push subscription registration for
// the admin dashboard devices
type PushSubscriptionHandler struct {
	subscriptionRepo *database.PushSubscriptionRepository
	notificationSvc  *services.NotificationService
	logger           *logrus.Logger
}

// NewPushSubscriptionHandler creates a new PushSubscriptionHandler
func NewPushSubscriptionHandler(
	subscriptionRepo *database.PushSubscriptionRepository,
	notificationSvc *services.NotificationService,
	logger *logrus.Logger,
) *PushSubscriptionHandler {
	return &PushSubscriptionHandler{
		subscriptionRepo: subscriptionRepo,
		notificationSvc:  notificationSvc,
		logger:           logger,
	}
}

// Subscribe registers a device's push subscription. Re-subscribing with
// a known endpoint overwrites the stored keys.
// POST /api/v1/push/subscribe
func (h *PushSubscriptionHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	sub, err := h.subscriptionRepo.Upsert(req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store push subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store subscription"})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Unsubscribe removes a device's push subscription
// DELETE /api/v1/push/subscribe
func (h *PushSubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.subscriptionRepo.DeleteByEndpoint(req.Endpoint); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription removed"})
}

// TestNotification sends a synthetic booking alert to every registered
// device so an admin can verify delivery end to end.
// POST /api/v1/admin/notifications/test
func (h *PushSubscriptionHandler) TestNotification(c *gin.Context) {
	dropoff := "Marrakech"
	booking := &models.Booking{
		ID:            "test-notification",
		PassengerName: "Test Passenger",
		Pickup:        "Casablanca",
		Dropoff:       &dropoff,
		Vehicle:       models.VehicleVito,
		TripType:      models.TripOneWay,
		Price:         1500,
		Status:        models.BookingPending,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.notificationSvc.DeliverBookingNotification(ctx, booking)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deliver test notification"})
		return
	}

	c.JSON(http.StatusOK, result)
}
