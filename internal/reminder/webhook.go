package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// WebhookNotifier POSTs reminders to a configured endpoint (a push gateway,
// ntfy topic, chat hook and the like).
type WebhookNotifier struct {
	URL        string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewWebhookNotifier(url string, logger internal.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

// RequestPermission probes the endpoint. A 401 or 403 maps to the permission
// denial the scheduler silently tolerates; anything else unreachable is a
// transient error.
func (n *WebhookNotifier) RequestPermission(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.URL, nil)
	if err != nil {
		return err
	}
	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return internal.ErrPermissionDenied
	case resp.StatusCode >= 500:
		return fmt.Errorf("notifier endpoint returned %d", resp.StatusCode)
	}
	return nil
}

type webhookPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(webhookPayload{Title: title, Body: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Errorf("notifier: failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		n.logger.Errorf("notifier: failed to deliver: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Errorf("notifier: endpoint returned %d", resp.StatusCode)
		return errors.New("notifier endpoint returned non-2xx")
	}
	return nil
}

var _ Notifier = (*WebhookNotifier)(nil)
