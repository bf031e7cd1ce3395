package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

const heartbeatInterval = 25 * time.Second

// EventsHandler streams booking changes to the admin dashboard over
// Server-Sent Events
type EventsHandler struct {
	feed   *services.BookingFeed
	logger *logrus.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(feed *services.BookingFeed, logger *logrus.Logger) *EventsHandler {
	return &EventsHandler{
		feed:   feed,
		logger: logger,
	}
}

// Stream opens an SSE connection. The first event carries the full
// booking snapshot; subsequent events are per-booking changes. A
// heartbeat keeps intermediaries from closing idle connections.
// GET /api/v1/admin/events
func (h *EventsHandler) Stream(c *gin.Context) {
	subscriberID, events := h.feed.Subscribe()
	defer h.feed.Unsubscribe(subscriberID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", h.feed.Snapshot())
	c.Writer.Flush()

	h.logger.WithField("subscriber_id", subscriberID).Debug("Dashboard event stream opened")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("booking", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().Unix())
			return true
		}
	})

	h.logger.WithField("subscriber_id", subscriberID).Debug("Dashboard event stream closed")
}
