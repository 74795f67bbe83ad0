package gasprice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
)

const defaultGweiFactor = "1e9"

// Provider resolves the gas price for the active environment: a fixed price
// when one is configured, otherwise the configured oracle.
type Provider struct {
	settings   config.EnvironmentSettings
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a gas price provider for the active environment
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewProviderFor(cfg.Settings, &http.Client{Timeout: timeout}, log)
}

// NewProviderFor creates a provider for explicit settings
func NewProviderFor(settings config.EnvironmentSettings, httpClient *http.Client, log *slog.Logger) *Provider {
	return &Provider{
		settings:   settings,
		httpClient: httpClient,
		log:        log,
	}
}

// GasPrice returns the gas price in wei
func (p *Provider) GasPrice(ctx context.Context) (*big.Int, error) {
	if price, ok := p.settings.FixedGasPrice(); ok {
		return price, nil
	}

	oracle := p.settings.GasPriceOracle
	if oracle == nil || oracle.URL == "" {
		return nil, domain.ErrGasPriceUnavailable
	}
	return p.fromOracle(ctx, oracle)
}

func (p *Provider) fromOracle(ctx context.Context, oracle *config.GasPriceOracle) (*big.Int, error) {
	p.log.Debug("querying gas price oracle", "url", oracle.URL, "parameter", oracle.GasParameter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oracle.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oracle request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query gas price oracle: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read oracle response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gas price oracle error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := extractParameter(body, oracle.GasParameter)
	if err != nil {
		return nil, err
	}
	return toWei(raw, oracle.GweiFactor)
}

// extractParameter reads data[parameter], falling back to a top-level
// [parameter]. A null data member counts as absent.
func extractParameter(body []byte, parameter string) (string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("failed to parse oracle response: %w", err)
	}

	var data map[string]json.RawMessage
	if raw, ok := top["data"]; ok {
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("failed to parse oracle response data: %w", err)
		}
	}

	value, ok := data[parameter]
	if !ok {
		value, ok = top[parameter]
	}
	if !ok {
		return "", fmt.Errorf("gas price oracle response has no %q field", parameter)
	}

	// Oracles report either JSON numbers or numeric strings
	return strings.Trim(strings.TrimSpace(string(value)), `"`), nil
}

func toWei(value, gweiFactor string) (*big.Int, error) {
	price, ok := new(big.Rat).SetString(value)
	if !ok {
		return nil, fmt.Errorf("invalid gas price %q from oracle", value)
	}
	if gweiFactor == "" {
		gweiFactor = defaultGweiFactor
	}
	factor, ok := new(big.Rat).SetString(gweiFactor)
	if !ok {
		return nil, fmt.Errorf("invalid gwei factor %q", gweiFactor)
	}

	wei := new(big.Rat).Mul(price, factor)
	return new(big.Int).Quo(wei.Num(), wei.Denom()), nil
}

var _ usecase.GasPriceProvider = (*Provider)(nil)
