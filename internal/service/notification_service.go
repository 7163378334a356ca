package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/logger"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// notificationPayload is the JSON body POSTed to the notification endpoint.
type notificationPayload struct {
	UserID    string        `json:"user_id"`
	Message   ports.Message `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// HTTPNotifier implements ports.Notifier by POSTing to a push gateway.
// Delivery happens in the background; the ledger never waits for it.
type HTTPNotifier struct {
	url        string
	timeout    time.Duration
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewHTTPNotifier creates a notifier posting to url.
func NewHTTPNotifier(url string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		url:        url,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

// NotifyUser enqueues a notification for userID. Only payload encoding errors are returned.
func (n *HTTPNotifier) NotifyUser(ctx context.Context, userID string, msg ports.Message) error {
	body, err := json.Marshal(notificationPayload{
		UserID:    userID,
		Message:   msg,
		RequestID: logger.RequestID(ctx),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	go n.deliver(userID, body)
	return nil
}

func (n *HTTPNotifier) deliver(userID string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Error().Err(err).Str("user_id", userID).Msg("notification: failed to create request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Warn().Err(err).Str("user_id", userID).Msg("notification: delivery failed")
		return
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.log.Warn().Str("user_id", userID).Int("status", resp.StatusCode).Msg("notification: non-2xx response")
		return
	}
	n.log.Debug().Str("user_id", userID).Msg("notification: delivered")
}

// NoopNotifier drops every notification. Used when no endpoint is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyUser(context.Context, string, ports.Message) error { return nil }

// notify sends msg and logs, never returns, a failure.
func notify(ctx context.Context, n ports.Notifier, log zerolog.Logger, userID string, msg ports.Message) {
	if n == nil || userID == "" {
		return
	}
	if err := n.NotifyUser(ctx, userID, msg); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("notification: failed to enqueue")
	}
}
