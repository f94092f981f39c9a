package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/logger"
)

// WebhookNotifier POSTs one JSON payload per event to a configured URL.
//
// Delivery is at-least-once per run with no cross-run tracking: a failed
// delivery is retried a few times, then logged and skipped. One event's
// failure never blocks the remaining events or the rest of the run.
type WebhookNotifier struct {
	url           string
	client        *http.Client
	maxRetries    uint64
	retryInterval time.Duration
	now           func() time.Time
}

// webhookPayload is the wire format posted for each new event.
type webhookPayload struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

// NewWebhookNotifier creates a webhook notifier. The timeout bounds each
// individual POST attempt.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetries:    3,
		retryInterval: time.Second,
		now:           time.Now,
	}
}

// Notify posts each event to the webhook. Always returns nil: delivery
// failures are recovered locally so the feed and seen-set updates proceed.
func (n *WebhookNotifier) Notify(events []*event.Event) error {
	for _, evt := range events {
		if err := n.deliver(evt); err != nil {
			logger.Warn("Failed to post to webhook", logger.Fields{
				"title": evt.Title,
				"error": err.Error(),
			})
			logger.IncrCounter("webhook.failures")
			continue
		}
		logger.Info("Posted to webhook", logger.Fields{"title": evt.Title})
		logger.IncrCounter("webhook.deliveries")
	}
	return nil
}

// deliver posts one event, retrying transient failures with exponential
// backoff before giving up.
func (n *WebhookNotifier) deliver(evt *event.Event) error {
	payload := webhookPayload{
		Title:     evt.Title,
		Link:      evt.Link,
		Date:      evt.Date,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = n.retryInterval

	return backoff.Retry(func() error {
		return n.post(body)
	}, backoff.WithMaxRetries(bo, n.maxRetries))
}

func (n *WebhookNotifier) post(body []byte) error {
	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
