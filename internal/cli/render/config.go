package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/samber/lo"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

type configView struct {
	ConfigPath  string             `json:"configPath" yaml:"configPath"`
	Exists      bool               `json:"exists" yaml:"exists"`
	Local       config.LocalConfig `json:"local" yaml:"local"`
	Network     string             `json:"network" yaml:"network"`
	ChainID     uint64             `json:"chainId" yaml:"chainId"`
	Environment config.Environment `json:"environment" yaml:"environment"`
	SafeVersion string             `json:"safeVersion" yaml:"safeVersion"`
	RPCURL      string             `json:"rpcUrl" yaml:"rpcUrl"`
	GatewayURL  string             `json:"gatewayUrl" yaml:"gatewayUrl"`
	Overridden  []config.ConfigKey `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// RenderConfig renders the stored local config next to the effective runtime values
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult, format Format) error {
	rt := result.Runtime
	if format != FormatTable {
		return writeStructured(r.out, format, configView{
			ConfigPath:  result.ConfigPath,
			Exists:      result.Exists,
			Local:       *result.Local,
			Network:     rt.NetworkKey,
			ChainID:     rt.ChainID(),
			Environment: rt.Environment,
			SafeVersion: rt.SafeVersion,
			RPCURL:      rt.Settings.RPCServiceURL,
			GatewayURL:  rt.Settings.ClientGatewayURL,
			Overridden:  result.Overridden,
		})
	}

	if result.Exists {
		fmt.Fprintln(r.out, "📋 Local config:")
		t := newDetailsTable()
		for _, key := range config.ValidConfigKeys() {
			value := orNotSet(result.Local.Get(key))
			if lo.Contains(result.Overridden, key) {
				value += " " + faintStyle.Sprint("(overridden)")
			}
			t.AppendRow(table.Row{string(key), value})
		}
		fmt.Fprintln(r.out, t.Render())
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintf(r.out, "No local config at %s, using defaults\n", getRelativePath(result.ConfigPath))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "⚙️  Effective settings:")
	t := newDetailsTable()
	t.AppendRows([]table.Row{
		{"network", fmt.Sprintf("%s (chain %d)", rt.NetworkKey, rt.ChainID())},
		{"env", string(rt.Environment)},
		{"safe_version", rt.SafeVersion},
		{"rpc", orNotSet(rt.Settings.RPCServiceURL)},
		{"gateway", orNotSet(rt.Settings.ClientGatewayURL)},
	})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	if result.RemovedValue == "" {
		fmt.Fprintf(r.out, "%s was not set\n", result.Key)
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was: %s), the default applies again", result.Key, result.RemovedValue)))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
