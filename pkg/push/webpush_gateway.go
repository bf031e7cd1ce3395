package push

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// WebPushGateway delivers notifications over the Web Push protocol.
// VAPID signing and payload encryption are handled by webpush-go; this
// type only maps transport outcomes onto the gateway contract.
type WebPushGateway struct {
	subject    string
	publicKey  string
	privateKey string
	ttl        int
	client     *http.Client
}

// WebPushConfig holds configuration for the Web Push gateway
type WebPushConfig struct {
	Subject    string // mailto: or https: contact address
	PublicKey  string // VAPID public key (base64 URL-encoded)
	PrivateKey string // VAPID private key
	TTLSeconds int
}

// NewWebPushGateway creates a new Web Push gateway
func NewWebPushGateway(cfg WebPushConfig) *WebPushGateway {
	ttl := cfg.TTLSeconds
	if ttl <= 0 {
		ttl = 86400
	}
	return &WebPushGateway{
		subject:    cfg.Subject,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		ttl:        ttl,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one encrypted payload to one endpoint
func (g *WebPushGateway) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      g.client,
		Subscriber:      g.subject,
		VAPIDPublicKey:  g.publicKey,
		VAPIDPrivateKey: g.privateKey,
		TTL:             g.ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return ClassifyStatus(resp.StatusCode)
}

// GetName returns the name of this gateway
func (g *WebPushGateway) GetName() string {
	return "Web Push (VAPID) Gateway"
}

// ClassifyStatus maps a push service HTTP status onto the gateway
// contract: nil for accepted, ErrSubscriptionGone for endpoints that
// will never work again, an error for everything else.
func ClassifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return ErrSubscriptionGone
	default:
		return fmt.Errorf("push service returned status %d", status)
	}
}
