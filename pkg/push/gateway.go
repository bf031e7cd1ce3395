package push

import (
	"context"
	"errors"

	"github.com/moroccotransfers/booking-backend/internal/models"
)

// ErrSubscriptionGone is returned when the push service reports the
// endpoint as permanently invalid (HTTP 404/410). The subscription
// should be removed from storage.
var ErrSubscriptionGone = errors.New("push subscription is gone")

// Gateway defines the interface for delivering one encrypted push
// message to one subscription endpoint.
type Gateway interface {
	// Send delivers payload to the subscription's endpoint. It returns
	// nil on success, ErrSubscriptionGone when the endpoint is
	// permanently invalid, and any other error for transient failures.
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error

	// GetName returns the name of the gateway implementation
	GetName() string
}
