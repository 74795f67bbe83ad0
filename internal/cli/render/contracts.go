package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/samber/lo"
)

// ContractsRenderer renders resolved Safe contracts
type ContractsRenderer struct {
	out io.Writer
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer) *ContractsRenderer {
	return &ContractsRenderer{
		out: out,
	}
}

type resolvedView struct {
	RequestedRole domain.ContractRole         `json:"requestedRole" yaml:"requestedRole"`
	Role          domain.ContractRole         `json:"role" yaml:"role"`
	ContractName  string                      `json:"contractName" yaml:"contractName"`
	Version       string                      `json:"version" yaml:"version"`
	ChainID       uint64                      `json:"chainId" yaml:"chainId"`
	Source        domain.DeploymentSourceKind `json:"source" yaml:"source"`
	Address       string                      `json:"address" yaml:"address"`
	Deployed      *bool                       `json:"deployed,omitempty" yaml:"deployed,omitempty"`
	Reason        string                      `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func newResolvedView(d *domain.ResolvedDeployment) resolvedView {
	return resolvedView{
		RequestedRole: d.RequestedRole,
		Role:          d.Role,
		ContractName:  d.Record.ContractName,
		Version:       d.Record.Version,
		ChainID:       d.ChainID,
		Source:        d.Source,
		Address:       d.Address.Hex(),
	}
}

// RenderResolved renders a single resolved deployment
func (r *ContractsRenderer) RenderResolved(d *domain.ResolvedDeployment, format Format) error {
	if format != FormatTable {
		return writeStructured(r.out, format, newResolvedView(d))
	}

	role := title(string(d.Role))
	if d.Role != d.RequestedRole {
		role += faintStyle.Sprintf(" (for %s)", d.RequestedRole)
	}

	t := newDetailsTable()
	t.AppendRows([]table.Row{
		{"Role", role},
		{"Contract", fmt.Sprintf("%s v%s", d.Record.ContractName, d.Record.Version)},
		{"Chain ID", d.ChainID},
		{"Source", string(d.Source)},
		{"Address", addressStyle.Sprint(d.Address.Hex())},
	})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderNetworkContext renders the contracts instantiated for a chain, with the
// outcome of the bytecode check when checks is non-nil
func (r *ContractsRenderer) RenderNetworkContext(nc *usecase.NetworkContext, checks []usecase.ContractCheck, format Format) error {
	byRole := lo.SliceToMap(checks, func(c usecase.ContractCheck) (domain.ContractRole, usecase.ContractCheck) {
		return c.Instance.Role(), c
	})

	if format != FormatTable {
		views := lo.Map(nc.Instances(), func(c *usecase.ContractInstance, _ int) resolvedView {
			v := newResolvedView(c.Deployment)
			if check, ok := byRole[c.Role()]; ok {
				v.Deployed = lo.ToPtr(check.Deployed)
				v.Reason = check.Reason
			}
			return v
		})
		return writeStructured(r.out, format, views)
	}

	fmt.Fprintf(r.out, "📜 Safe contracts on chain %d (Safe %s)\n\n", nc.ChainID, nc.SafeVersion)

	t := newTable()
	header := table.Row{"Role", "Contract", "Version", "Source", "Address"}
	if checks != nil {
		header = append(header, "Code")
	}
	t.AppendHeader(header)

	for _, c := range nc.Instances() {
		d := c.Deployment
		row := table.Row{title(string(d.Role)), d.Record.ContractName, d.Record.Version, string(d.Source), addressStyle.Sprint(d.Address.Hex())}
		if checks != nil {
			row = append(row, checkStatus(byRole[c.Role()]))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

func checkStatus(c usecase.ContractCheck) string {
	if c.Deployed {
		return currentStyle.Sprint("✓ deployed")
	}
	return FormatError(c.Reason)
}
