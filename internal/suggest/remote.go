package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// RemoteProvider calls a hosted language-model endpoint. Any transport,
// status, or decode failure surfaces as a single opaque generation error; the
// caller retries nothing.
type RemoteProvider struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewRemoteProvider(url, apiKey string, logger internal.Logger) *RemoteProvider {
	return &RemoteProvider{
		URL:        url,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (p *RemoteProvider) Suggest(ctx context.Context, sreq *Request) (*Response, error) {
	body, err := json.Marshal(sreq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		p.logger.Errorf("suggest: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.logger.Errorf("suggest: failed to call suggestion service: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Errorf("suggest: suggestion service returned %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: service returned %d", internal.ErrGeneration, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		p.logger.Errorf("suggest: failed to decode response: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrGeneration, err)
	}
	return &out, nil
}

var _ Provider = (*RemoteProvider)(nil)
