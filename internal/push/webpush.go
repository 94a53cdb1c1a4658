package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"medilog-backend/internal/model"
)

// ErrSubscriptionGone reports that the push service no longer knows the
// endpoint (HTTP 404/410). The caller should delete the subscription; any
// other error is transient and the subscription stays.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Payload is the wire contract toward the service worker on the device.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	URL   string `json:"url"`
}

// DefaultPayload fills in the client-side defaults used by the web app.
func DefaultPayload(title, body string) Payload {
	return Payload{
		Title: title,
		Body:  body,
		Icon:  "/icon.png",
		URL:   "/dashboard",
	}
}

// Sender delivers one encrypted payload to one device subscription.
type Sender interface {
	Send(ctx context.Context, sub model.PushSubscription, payload Payload) error
}

// WebPushSender sends VAPID-signed Web Push messages.
//
// The short HTTP timeout is deliberate: one slow push service must not stall
// an entire dispatch batch.
type WebPushSender struct {
	subject    string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

func NewWebPushSender(subject, publicKey, privateKey string) *WebPushSender {
	return &WebPushSender{
		subject:    subject,
		publicKey:  publicKey,
		privateKey: privateKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether a VAPID key pair is present. Without one the
// engine counts every send as failed instead of crashing.
func (s *WebPushSender) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

func (s *WebPushSender) Send(ctx context.Context, sub model.PushSubscription, payload Payload) error {
	if !s.Configured() {
		return errors.New("vapid keys not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             3600,
		HTTPClient:      s.httpClient,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
