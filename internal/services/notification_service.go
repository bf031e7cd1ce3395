package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/pkg/push"
	"github.com/sirupsen/logrus"
)

// SubscriptionStore is the storage surface the notification service
// needs: a full snapshot and a batch prune.
type SubscriptionStore interface {
	GetAll() ([]models.PushSubscription, error)
	DeleteByIDs(ids []string) error
}

// DeliveryResult reports the outcome of one fan-out.
type DeliveryResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Expired int `json:"expired"`
}

// NotificationService fans one booking notification out to every
// registered push endpoint and prunes endpoints the transport reports
// as gone. Partial delivery failure is never an error; only an
// unreachable subscription store is.
type NotificationService struct {
	store   SubscriptionStore
	gateway push.Gateway
	logger  *logrus.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store SubscriptionStore, gateway push.Gateway, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

// bookingNotification is the payload the admin service worker renders.
type bookingNotification struct {
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Icon    string               `json:"icon"`
	Badge   string               `json:"badge"`
	Tag     string               `json:"tag"`
	Data    notificationData     `json:"data"`
	Actions []notificationAction `json:"actions"`
}

type notificationData struct {
	URL       string `json:"url"`
	BookingID string `json:"bookingId"`
}

type notificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

type deliveryOutcome int

const (
	outcomeSent deliveryOutcome = iota
	outcomeFailed
	outcomeExpired
)

// DeliverBookingNotification sends a new-booking alert to every
// registered device. Per-endpoint attempts run concurrently and are
// failure-isolated; counters are aggregated only after all attempts
// settle. Expired endpoints are deleted in one batch afterwards.
func (s *NotificationService) DeliverBookingNotification(ctx context.Context, booking *models.Booking) (DeliveryResult, error) {
	subscriptions, err := s.store.GetAll()
	if err != nil {
		// "couldn't check" must stay distinct from "no subscriptions"
		return DeliveryResult{}, fmt.Errorf("failed to load push subscriptions: %w", err)
	}

	if len(subscriptions) == 0 {
		s.logger.WithField("booking_id", booking.ID).Debug("No push subscriptions registered")
		return DeliveryResult{}, nil
	}

	payload, err := json.Marshal(buildBookingNotification(booking))
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	outcomes := make([]deliveryOutcome, len(subscriptions))
	var wg sync.WaitGroup
	for i := range subscriptions {
		wg.Add(1)
		go func(i int, sub models.PushSubscription) {
			defer wg.Done()
			err := s.gateway.Send(ctx, sub, payload)
			switch {
			case err == nil:
				outcomes[i] = outcomeSent
			case errors.Is(err, push.ErrSubscriptionGone):
				outcomes[i] = outcomeExpired
			default:
				outcomes[i] = outcomeFailed
				s.logger.WithFields(logrus.Fields{
					"booking_id": booking.ID,
					"endpoint":   truncateEndpoint(sub.Endpoint),
				}).WithError(err).Warn("Push delivery failed")
			}
		}(i, subscriptions[i])
	}
	wg.Wait()

	var result DeliveryResult
	expiredIDs := []string{}
	for i, outcome := range outcomes {
		switch outcome {
		case outcomeSent:
			result.Sent++
		case outcomeExpired:
			result.Expired++
			expiredIDs = append(expiredIDs, subscriptions[i].ID)
		default:
			result.Failed++
		}
	}

	if len(expiredIDs) > 0 {
		if err := s.store.DeleteByIDs(expiredIDs); err != nil {
			// Pruning is housekeeping; the fan-out itself succeeded.
			s.logger.WithError(err).Error("Failed to prune expired push subscriptions")
		} else {
			s.logger.WithField("count", len(expiredIDs)).Info("Pruned expired push subscriptions")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"sent":       result.Sent,
		"failed":     result.Failed,
		"expired":    result.Expired,
	}).Info("Booking notification fan-out complete")

	return result, nil
}

func buildBookingNotification(booking *models.Booking) bookingNotification {
	body := fmt.Sprintf("%s - %s", booking.PassengerName, booking.Pickup)
	if booking.Dropoff != nil && *booking.Dropoff != "" {
		body += " → " + *booking.Dropoff
	}
	body += fmt.Sprintf(" - %d DH", booking.Price)

	return bookingNotification{
		Title: "New Booking Received!",
		Body:  body,
		Icon:  "/icon-admin-192.png",
		Badge: "/icon-admin-192.png",
		// Stable tag so repeated deliveries for one booking collapse
		// into a single notification on the device.
		Tag: "booking-" + booking.ID,
		Data: notificationData{
			URL:       "/admin",
			BookingID: booking.ID,
		},
		Actions: []notificationAction{
			{Action: "view", Title: "View Details"},
			{Action: "confirm", Title: "Confirm"},
		},
	}
}

func truncateEndpoint(endpoint string) string {
	if len(endpoint) > 50 {
		return endpoint[:50] + "..."
	}
	return endpoint
}
