package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"home-panel/internal/domain/model"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// sensorTimeout bounds a single poll. Commands carry no client-side limit;
// their deadline comes from the caller's context.
const sensorTimeout = 10 * time.Second

// Client talks to the controller's request/response endpoints.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	sensorTimeout time.Duration
}

func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("controller base url is required")
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{},
		sensorTimeout: sensorTimeout,
	}, nil
}

// FetchSensors reads the DHT sensor. A non-2xx status counts as a failed poll.
func (c *Client) FetchSensors(ctx context.Context) (model.DHTReading, error) {
	ctx, cancel := context.WithTimeout(ctx, c.sensorTimeout)
	defer cancel()

	resp, endpoint, err := c.get(ctx, "/dht")
	if err != nil {
		return model.DHTReading{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.DHTReading{}, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.DHTReading{}, fmt.Errorf("request %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var reading model.DHTReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return model.DHTReading{}, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return reading, nil
}

// SendCommand fires GET /<device>/<on|off>. Only transport failures are
// errors; the response is drained and discarded.
func (c *Client) SendCommand(ctx context.Context, device model.Device, on bool) error {
	resp, _, err := c.get(ctx, device.CommandPath(on))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, string, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, "", fmt.Errorf("build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, endpoint, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, endpoint, fmt.Errorf("request %s: %w", endpoint, err)
	}
	return resp, endpoint, nil
}
