package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork prompts for one of the catalog networks, starting on current
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []*config.NetworkConfig, current string) (*config.NetworkConfig, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode; pass a network key")
	}

	if len(networks) == 0 {
		return nil, fmt.Errorf("no networks provided for selection")
	}

	if len(networks) == 1 {
		return networks[0], nil
	}

	options := formatNetworkOptions(networks, current)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     "Select network",
		Items:     options,
		Templates: templates,
		Size:      10,
		CursorPos: currentIndex(networks, current),
		Searcher:  createFuzzySearchFunc(searchKeys(networks)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// formatNetworkOptions creates display strings like "rsk_testnet  RSK Testnet (31) [testnet]"
func formatNetworkOptions(networks []*config.NetworkConfig, current string) []string {
	options := make([]string, len(networks))
	for i, network := range networks {
		key := color.New(color.FgWhite, color.Bold).Sprint(network.Key)
		label := color.New(color.FgBlue).Sprintf("%s (%d)", network.Network.Label, network.ChainID())

		var indicators []string
		if network.Network.IsTestNet {
			indicators = append(indicators, "testnet")
		}
		if network.Key == current {
			indicators = append(indicators, "current")
		}

		if len(indicators) > 0 {
			indicatorStr := color.New(color.FgYellow).Sprintf("[%s]", strings.Join(indicators, ", "))
			options[i] = fmt.Sprintf("%s  %s %s", key, label, indicatorStr)
		} else {
			options[i] = fmt.Sprintf("%s  %s", key, label)
		}
	}
	return options
}

func currentIndex(networks []*config.NetworkConfig, current string) int {
	for i, network := range networks {
		if network.Key == current {
			return i
		}
	}
	return 0
}

// searchKeys are the uncolored strings the prompt filter matches against
func searchKeys(networks []*config.NetworkConfig) []string {
	keys := make([]string, len(networks))
	for i, network := range networks {
		keys[i] = fmt.Sprintf("%s %s %d", network.Key, network.Network.Label, network.ChainID())
	}
	return keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
