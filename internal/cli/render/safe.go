package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/samber/lo"
)

// SafeRenderer renders Safe reads and deployment transactions. Addresses link
// to the explorer of the selected environment when it has one.
type SafeRenderer struct {
	out      io.Writer
	settings config.EnvironmentSettings
}

// NewSafeRenderer creates a new Safe renderer
func NewSafeRenderer(out io.Writer, settings config.EnvironmentSettings) *SafeRenderer {
	return &SafeRenderer{
		out:      out,
		settings: settings,
	}
}

func (r *SafeRenderer) link(addr common.Address) string {
	return r.settings.ExplorerLink(config.ExplorerAddress, addr.Hex())
}

// address renders a table cell with the address and its explorer link on a second line
func (r *SafeRenderer) address(addr common.Address) string {
	cell := addressStyle.Sprint(addr.Hex())
	if link := r.link(addr); link != "" {
		cell += "\n" + faintStyle.Sprint(link)
	}
	return cell
}

type masterCopyView struct {
	Proxy         string `json:"proxy" yaml:"proxy"`
	ProxyURL      string `json:"proxyUrl,omitempty" yaml:"proxyUrl,omitempty"`
	MasterCopy    string `json:"masterCopy" yaml:"masterCopy"`
	MasterCopyURL string `json:"masterCopyUrl,omitempty" yaml:"masterCopyUrl,omitempty"`
}

// RenderMasterCopy renders the implementation behind a Safe proxy
func (r *SafeRenderer) RenderMasterCopy(proxy, masterCopy common.Address, format Format) error {
	if format != FormatTable {
		return writeStructured(r.out, format, masterCopyView{
			Proxy:         proxy.Hex(),
			ProxyURL:      r.link(proxy),
			MasterCopy:    masterCopy.Hex(),
			MasterCopyURL: r.link(masterCopy),
		})
	}
	t := newDetailsTable()
	t.AppendRows([]table.Row{
		{"Proxy", r.address(proxy)},
		{"Master copy", r.address(masterCopy)},
	})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

type deploymentTxView struct {
	To           string              `json:"to" yaml:"to"`
	ToURL        string              `json:"toUrl,omitempty" yaml:"toUrl,omitempty"`
	Singleton    string              `json:"singleton" yaml:"singleton"`
	SingletonURL string              `json:"singletonUrl,omitempty" yaml:"singletonUrl,omitempty"`
	Owners       []string            `json:"owners" yaml:"owners"`
	Threshold    uint64              `json:"threshold" yaml:"threshold"`
	SaltNonce    string              `json:"saltNonce" yaml:"saltNonce"`
	Data         string              `json:"data" yaml:"data"`
	Cost         *deploymentCostView `json:"cost,omitempty" yaml:"cost,omitempty"`
}

type deploymentCostView struct {
	Gas      uint64 `json:"gas" yaml:"gas"`
	GasPrice string `json:"gasPrice" yaml:"gasPrice"`
	Total    string `json:"total" yaml:"total"`
}

// RenderDeploymentTx renders an unsigned Safe deployment and its estimated cost, if any
func (r *SafeRenderer) RenderDeploymentTx(tx *domain.DeploymentTx, cost *domain.DeploymentCost, symbol string, format Format) error {
	if format != FormatTable {
		view := deploymentTxView{
			To:           tx.Factory.Hex(),
			ToURL:        r.link(tx.Factory),
			Singleton:    tx.Singleton.Hex(),
			SingletonURL: r.link(tx.Singleton),
			Owners:       lo.Map(tx.Owners, func(a common.Address, _ int) string { return a.Hex() }),
			Threshold:    tx.Threshold,
			SaltNonce:    tx.SaltNonce.String(),
			Data:         hexutil.Encode(tx.Data),
		}
		if cost != nil {
			view.Cost = &deploymentCostView{Gas: cost.Gas, GasPrice: cost.GasPrice.String(), Total: cost.Total.String()}
		}
		return writeStructured(r.out, format, view)
	}

	fmt.Fprintf(r.out, "🏗️  Safe deployment (%d of %d owners)\n\n", tx.Threshold, len(tx.Owners))

	t := newDetailsTable()
	t.AppendRow(table.Row{"To (factory)", r.address(tx.Factory)})
	t.AppendRow(table.Row{"Singleton", r.address(tx.Singleton)})
	for i, owner := range tx.Owners {
		t.AppendRow(table.Row{fmt.Sprintf("Owner %d", i+1), owner.Hex()})
	}
	t.AppendRow(table.Row{"Salt nonce", tx.SaltNonce.String()})
	if cost != nil {
		t.AppendRow(table.Row{"Gas (x2)", cost.Gas})
		t.AppendRow(table.Row{"Gas price", fmt.Sprintf("%s wei", cost.GasPrice)})
		t.AppendRow(table.Row{"Max cost", fmt.Sprintf("%s wei %s", cost.Total, symbol)})
	}
	fmt.Fprintln(r.out, t.Render())

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, labelStyle.Sprint("Data:"))
	fmt.Fprintln(r.out, hexutil.Encode(tx.Data))
	return nil
}

type safeStateView struct {
	Address    string   `json:"address" yaml:"address"`
	AddressURL string   `json:"addressUrl,omitempty" yaml:"addressUrl,omitempty"`
	Version    string   `json:"version" yaml:"version"`
	Owners     []string `json:"owners" yaml:"owners"`
	Threshold  string   `json:"threshold" yaml:"threshold"`
	Nonce      string   `json:"nonce" yaml:"nonce"`
}

// RenderSafeState renders a Safe's on-chain configuration
func (r *SafeRenderer) RenderSafeState(state *domain.SafeState, format Format) error {
	owners := lo.Map(state.Owners, func(a common.Address, _ int) string { return a.Hex() })
	if format != FormatTable {
		return writeStructured(r.out, format, safeStateView{
			Address:    state.Address.Hex(),
			AddressURL: r.link(state.Address),
			Version:    state.Version,
			Owners:     owners,
			Threshold:  state.Threshold.String(),
			Nonce:      state.Nonce.String(),
		})
	}

	fmt.Fprintf(r.out, "🔐 Safe %s\n\n", addressStyle.Sprint(state.Address.Hex()))
	t := newDetailsTable()
	if link := r.link(state.Address); link != "" {
		t.AppendRow(table.Row{"Explorer", faintStyle.Sprint(link)})
	}
	t.AppendRows([]table.Row{
		{"Version", state.Version},
		{"Threshold", fmt.Sprintf("%s of %d", state.Threshold, len(owners))},
		{"Nonce", state.Nonce.String()},
	})
	for i, owner := range owners {
		t.AppendRow(table.Row{fmt.Sprintf("Owner %d", i+1), owner})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
