package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/samber/lo"
)

// NetworksRenderer renders the network catalog
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

type networkListItem struct {
	Key       string `json:"key" yaml:"key"`
	ChainID   uint64 `json:"chainId" yaml:"chainId"`
	Label     string `json:"label" yaml:"label"`
	IsTestNet bool   `json:"isTestNet" yaml:"isTestNet"`
	Symbol    string `json:"symbol" yaml:"symbol"`
	RPCURL    string `json:"rpcUrl" yaml:"rpcUrl"`
	Current   bool   `json:"current" yaml:"current"`
}

// RenderNetworksList renders every catalog network, marking the active one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult, format Format) error {
	if format != FormatTable {
		items := lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkListItem {
			return networkListItem(n)
		})
		return writeStructured(r.out, format, items)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"", "Key", "Chain ID", "Label", "Symbol", "RPC"})
	for _, n := range result.Networks {
		marker, key := " ", n.Key
		if n.Current {
			marker, key = currentStyle.Sprint("*"), currentStyle.Sprint(n.Key)
		}
		label := n.Label
		if n.IsTestNet {
			label += " " + testnetStyle.Sprint("(testnet)")
		}
		t.AppendRow(table.Row{marker, key, n.ChainID, label, n.Symbol, orNotSet(n.RPCURL)})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

type networkDetails struct {
	Key              string                     `json:"key" yaml:"key"`
	ChainID          uint64                     `json:"chainId" yaml:"chainId"`
	Label            string                     `json:"label" yaml:"label"`
	IsTestNet        bool                       `json:"isTestNet" yaml:"isTestNet"`
	NativeCoin       config.NativeCoin          `json:"nativeCoin" yaml:"nativeCoin"`
	Environment      config.Environment         `json:"environment" yaml:"environment"`
	Active           bool                       `json:"active" yaml:"active"`
	Settings         config.EnvironmentSettings `json:"settings" yaml:"settings"`
	DisabledWallets  []config.Wallet            `json:"disabledWallets" yaml:"disabledWallets"`
	DisabledFeatures []config.Feature           `json:"disabledFeatures" yaml:"disabledFeatures"`
}

// RenderNetwork renders one network with the settings of the active environment
func (r *NetworksRenderer) RenderNetwork(result *usecase.ShowNetworkResult, format Format) error {
	n := result.Network
	disabledWallets := lo.Reject(config.AllWallets(), func(w config.Wallet, _ int) bool { return n.IsWalletEnabled(w) })
	disabledFeatures := lo.Reject(config.AllFeatures(), func(f config.Feature, _ int) bool { return n.IsFeatureEnabled(f) })
	if format != FormatTable {
		return writeStructured(r.out, format, networkDetails{
			Key:              n.Key,
			ChainID:          n.ChainID(),
			Label:            n.Network.Label,
			IsTestNet:        n.Network.IsTestNet,
			NativeCoin:       n.Network.NativeCoin,
			Environment:      result.Environment,
			Active:           result.Active,
			Settings:         result.Settings,
			DisabledWallets:  disabledWallets,
			DisabledFeatures: disabledFeatures,
		})
	}

	header := fmt.Sprintf("🌐 %s (%s)", n.Network.Label, n.Key)
	if result.Active {
		header += " " + currentStyle.Sprint("[active]")
	}
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out)

	s := result.Settings
	t := newDetailsTable()
	t.AppendRows([]table.Row{
		{"Chain ID", n.ChainID()},
		{"Testnet", n.Network.IsTestNet},
		{"Native coin", fmt.Sprintf("%s (%s, %d decimals)", n.Network.NativeCoin.Symbol, n.Network.NativeCoin.Name, n.Network.NativeCoin.Decimals)},
		{"Environment", title(string(result.Environment))},
		{"RPC", orNotSet(s.RPCServiceURL)},
		{"Client gateway", orNotSet(s.ClientGatewayURL)},
		{"Tx service", orNotSet(s.TxServiceURL)},
		{"Safe app", orNotSet(s.SafeURL)},
		{"Explorer", orNotSet(s.NetworkExplorerURL)},
		{"Gas price", gasPriceSource(s)},
		{"Disabled wallets", joinOrNone(lo.Map(disabledWallets, func(w config.Wallet, _ int) string { return string(w) }))},
		{"Disabled features", joinOrNone(lo.Map(disabledFeatures, func(f config.Feature, _ int) string { return string(f) }))},
	})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderSelected renders the result of networks select
func (r *NetworksRenderer) RenderSelected(result *usecase.SelectNetworkResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Selected network %s (chain %d)", result.Network.Key, result.Network.ChainID())))
	if result.Previous != "" && result.Previous != result.Network.Key {
		fmt.Fprintf(r.out, "   previously: %s\n", result.Previous)
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

func gasPriceSource(s config.EnvironmentSettings) string {
	if price, ok := s.FixedGasPrice(); ok {
		return fmt.Sprintf("%s wei (fixed)", price)
	}
	if s.GasPriceOracle != nil && s.GasPriceOracle.URL != "" {
		return fmt.Sprintf("oracle %s [%s]", s.GasPriceOracle.URL, s.GasPriceOracle.GasParameter)
	}
	return faintStyle.Sprint("(not set)")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
