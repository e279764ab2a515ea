// Package mirror pushes store snapshots to a remote key-value backup
// endpoint. The protocol is a plain HTTP PUT of the JSON blob under the
// company key; the last writer wins and there is no conflict resolution.
package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mfrancor/contalocal/internal/store"
)

// ClientConfig represents the configuration for the mirror client.
type ClientConfig struct {
	BaseURL    string
	Token      string
	CompanyKey string
	Timeout    time.Duration // Default: 30 seconds
}

// Client is a remote mirror client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	companyKey string
}

// NewClient creates a new mirror client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    config.BaseURL,
		token:      config.Token,
		companyKey: config.CompanyKey,
	}
}

// Push uploads one snapshot under the configured company key. It returns
// the number of bytes sent.
func (c *Client) Push(snapshot *store.Snapshot) (int, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/blobs/%s", c.baseURL, c.companyKey)

	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return 0, c.parseError(resp)
	}

	return len(payload), nil
}

// parseError parses an error response from the mirror endpoint.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mirror error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("mirror error (status %d): %s", resp.StatusCode, string(body))
	}

	if errResp.ErrorDescription != "" {
		return fmt.Errorf("mirror error: %s - %s", errResp.Error, errResp.ErrorDescription)
	}

	return fmt.Errorf("mirror error: %s", errResp.Error)
}
