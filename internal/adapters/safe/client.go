package safe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
)

const defaultTimeout = 30 * time.Second

// ClientAdapter talks to the Safe client gateway of the active environment
type ClientAdapter struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClientAdapter creates a client for cfg.Settings.ClientGatewayURL
func NewClientAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ClientAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewClient(cfg.Settings.ClientGatewayURL, &http.Client{Timeout: timeout}, log)
}

// NewClient creates a client for an explicit gateway base URL
func NewClient(baseURL string, httpClient *http.Client, log *slog.Logger) *ClientAdapter {
	return &ClientAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// GetSafeInfo fetches {gateway}/safes/{address}/
func (c *ClientAdapter) GetSafeInfo(ctx context.Context, address common.Address) (*domain.SafeInfo, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("client gateway URL not configured")
	}

	url := fmt.Sprintf("%s/safes/%s/", c.baseURL, address.Hex())
	c.log.Debug("GET", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get Safe info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug("client gateway response", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("safe %s: %w", address.Hex(), domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	info, err := c.decodeSafeInfo(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Safe info: %w", err)
	}
	return info, nil
}

// decodeSafeInfo decodes each field on its own. A field with an unexpected
// type is left at its zero value instead of failing the whole payload; the
// body itself must still be a JSON object.
func (c *ClientAdapter) decodeSafeInfo(body []byte) (*domain.SafeInfo, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	info := &domain.SafeInfo{}
	targets := map[string]any{
		"address":         &info.Address,
		"nonce":           &info.Nonce,
		"threshold":       &info.Threshold,
		"owners":          &info.Owners,
		"implementation":  &info.Implementation,
		"fallbackHandler": &info.FallbackHandler,
		"version":         &info.Version,
	}
	for name, target := range targets {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			c.log.Debug("ignoring malformed Safe info field", "field", name, "error", err)
		}
	}

	// chain IDs arrive as strings or as bare numbers
	if raw, ok := fields["chainId"]; ok {
		var chainID json.Number
		if err := json.Unmarshal(raw, &chainID); err == nil {
			info.ChainID = chainID.String()
		} else if err := json.Unmarshal(raw, &info.ChainID); err != nil {
			c.log.Debug("ignoring malformed Safe info field", "field", "chainId", "error", err)
		}
	}
	return info, nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainInfoClient = (*ClientAdapter)(nil)
