package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/serviceorder"
)

// Client reads order snapshots from the client portal's REST API. The portal
// is owned by another team; we only consume it and treat its payload as a
// snapshot, never as a command.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg internal.PortalConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

type orderPayload struct {
	Numero      string `json:"numero_os"`
	Status      string `json:"status_os"`
	Cliente     string `json:"cliente"`
	Equipamento string `json:"equipamento"`
}

// FetchOrder queries the portal for the latest state of one order.
func (c *Client) FetchOrder(ctx context.Context, number string) (*serviceorder.OrderSnapshot, error) {
	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/os/%s", c.baseURL, url.PathEscape(number))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("portal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("portal fetch failed", "order_number", number, "error", err)
		return nil, fmt.Errorf("portal fetch: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, internal.ErrOrderNotFound
	default:
		c.logger.Error("portal returned unexpected status",
			"order_number", number,
			"status_code", resp.StatusCode)
		return nil, fmt.Errorf("portal returned status %d", resp.StatusCode)
	}

	var payload orderPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("portal payload: %w", err)
	}

	return &serviceorder.OrderSnapshot{
		Number:    payload.Numero,
		Status:    payload.Status,
		Client:    payload.Cliente,
		Equipment: payload.Equipamento,
	}, nil
}
