package render

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Safe Singleton L2", title("safe-singleton-l2"))
	assert.Equal(t, "Production", title("production"))
}

var listResult = &usecase.ListNetworksResult{
	Current: "rsk_testnet",
	Networks: []usecase.NetworkStatus{
		{Key: "rsk_mainnet", ChainID: 30, Label: "RSK", Symbol: "RBTC", RPCURL: "https://public-node.rsk.co"},
		{Key: "rsk_testnet", ChainID: 31, Label: "RSK Testnet", IsTestNet: true, Symbol: "tRBTC", Current: true},
	},
}

func TestRenderNetworksList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(listResult, FormatTable))

		out := buf.String()
		assert.Contains(t, out, "Available Networks")
		assert.Contains(t, out, "CHAIN ID")
		assert.Contains(t, out, "https://public-node.rsk.co")
		assert.Contains(t, out, "RSK Testnet (testnet)")
		assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "staging (overridden)")
		assert.Contains(t, out, "* ")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(listResult, FormatJSON))

		var items []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "rsk_mainnet", items[0]["key"])
		assert.Equal(t, float64(30), items[0]["chainId"])
		assert.Equal(t, true, items[1]["current"])
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{}, FormatTable))
		assert.Equal(t, "No networks configured\n", buf.String())
	})
}

func TestRenderNetwork(t *testing.T) {
	price := uint64(60000000)
	network := &config.NetworkConfig{
		Key:             "rsk_mainnet",
		Network:         config.NetworkInfo{ID: 30, Label: "RSK", NativeCoin: config.NativeCoin{Symbol: "RBTC", Name: "RSK Bitcoin", Decimals: 18}},
		DisabledWallets: []config.Wallet{"Trezor", config.WalletFortmatic},
	}
	// feature names match exactly, so a lowercase entry gates nothing
	network.DisabledFeatures = []config.Feature{"safe_apps"}
	result := &usecase.ShowNetworkResult{
		Network:     network,
		Environment: config.EnvStaging,
		Settings: config.EnvironmentSettings{
			RPCServiceURL:    "https://public-node.rsk.co",
			ClientGatewayURL: "https://api.rsk-safe.com/v1",
			GasPrice:         &price,
		},
		Active: true,
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetwork(result, FormatTable))

		out := buf.String()
		assert.Contains(t, out, "RSK (rsk_mainnet) [active]")
		assert.Contains(t, out, "RBTC (RSK Bitcoin, 18 decimals)")
		assert.Contains(t, out, "Staging")
		assert.Contains(t, out, "60000000 wei (fixed)")
		assert.Contains(t, out, "trezor, fortmatic")
		assert.NotContains(t, out, "Trezor")
		assert.Contains(t, out, "none")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetwork(result, FormatYAML))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "rsk_mainnet", decoded["key"])
		assert.Equal(t, "staging", decoded["environment"])
		settings := decoded["settings"].(map[string]any)
		assert.Equal(t, "https://api.rsk-safe.com/v1", settings["clientGatewayUrl"])
		assert.Equal(t, []any{"trezor", "fortmatic"}, decoded["disabledWallets"])
		assert.Empty(t, decoded["disabledFeatures"])
	})
}

func TestGasPriceSource(t *testing.T) {
	assert.Equal(t, "(not set)", gasPriceSource(config.EnvironmentSettings{}))
	assert.Equal(t, "oracle https://gas.example/api [fast]", gasPriceSource(config.EnvironmentSettings{
		GasPriceOracle: &config.GasPriceOracle{URL: "https://gas.example/api", GasParameter: "fast"},
	}))
}

func TestRenderConfig(t *testing.T) {
	network := &config.NetworkConfig{Key: "local", Network: config.NetworkInfo{ID: 4447}}
	result := &usecase.ShowConfigResult{
		Local:      &config.LocalConfig{Network: "local", Env: "staging"},
		ConfigPath: "/tmp/.safekit/config.local.json",
		Exists:     true,
		Overridden: []config.ConfigKey{config.ConfigKeyEnv},
		Runtime: &config.RuntimeConfig{
			NetworkKey:  "local",
			Network:     network,
			Environment: config.EnvDev,
			SafeVersion: "1.3.0",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewConfigRenderer(&buf).RenderConfig(result, FormatTable))
	out := buf.String()
	assert.Contains(t, out, "Local config")
	assert.Contains(t, out, "local (chain 4447)")
	assert.Contains(t, out, "(not set)")

	buf.Reset()
	require.NoError(t, NewConfigRenderer(&buf).RenderConfig(result, FormatJSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(4447), decoded["chainId"])
	assert.Equal(t, map[string]any{"network": "local", "env": "staging"}, decoded["local"])
	assert.Equal(t, []any{"env"}, decoded["overridden"])
}

func TestRenderRemove(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConfigRenderer(&buf).RenderRemove(&usecase.RemoveConfigResult{
		Key:          config.ConfigKeyEnv,
		RemovedValue: "dev",
		ConfigPath:   "/tmp/config.local.json",
	}))
	assert.Contains(t, buf.String(), "Removed env (was: dev)")
}

func resolved(role domain.ContractRole, name, addr string) *domain.ResolvedDeployment {
	return &domain.ResolvedDeployment{
		RequestedRole: role,
		Role:          role,
		ChainID:       31,
		Source:        domain.SourceLocal,
		Record:        &domain.DeploymentRecord{ContractName: name, Version: "1.2.0"},
		Address:       common.HexToAddress(addr),
	}
}

func TestRenderResolved(t *testing.T) {
	d := resolved(domain.RoleSafeSingletonL2, "GnosisSafeL2", "0x3E5c63644E683549055b9Be8653de26E0B4CD36E")
	d.RequestedRole = domain.RoleSafeSingleton

	var buf bytes.Buffer
	require.NoError(t, NewContractsRenderer(&buf).RenderResolved(d, FormatTable))
	assert.Contains(t, buf.String(), "Safe Singleton L2 (for safe-singleton)")
	assert.Contains(t, buf.String(), "GnosisSafeL2 v1.2.0")
	assert.Contains(t, buf.String(), "0x3E5c63644E683549055b9Be8653de26E0B4CD36E")

	buf.Reset()
	require.NoError(t, NewContractsRenderer(&buf).RenderResolved(d, FormatJSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "safe-singleton", decoded["requestedRole"])
	assert.Equal(t, "local", decoded["source"])
	assert.NotContains(t, decoded, "deployed")
}

func TestRenderNetworkContext(t *testing.T) {
	singleton := &usecase.ContractInstance{Deployment: resolved(domain.RoleSafeSingleton, "GnosisSafe", "0x01")}
	factory := &usecase.ContractInstance{Deployment: resolved(domain.RoleProxyFactory, "ProxyFactory", "0x02")}
	handler := &usecase.ContractInstance{Deployment: resolved(domain.RoleFallbackHandler, "CompatibilityFallbackHandler", "0x03")}
	multiSend := &usecase.ContractInstance{Deployment: resolved(domain.RoleMultiSend, "MultiSendCallOnly", "0x04")}
	nc := &usecase.NetworkContext{ChainID: 31, SafeVersion: "1.2.0", Singleton: singleton, ProxyFactory: factory, FallbackHandler: handler, MultiSend: multiSend}

	checks := []usecase.ContractCheck{
		{Instance: singleton, Deployed: true},
		{Instance: factory, Deployed: true},
		{Instance: handler, Deployed: false, Reason: "no code at address"},
		{Instance: multiSend, Deployed: true},
	}

	t.Run("table without checks", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractsRenderer(&buf).RenderNetworkContext(nc, nil, FormatTable))
		assert.Contains(t, buf.String(), "chain 31 (Safe 1.2.0)")
		assert.Contains(t, buf.String(), "CompatibilityFallbackHandler")
		assert.NotContains(t, buf.String(), "CODE")
	})

	t.Run("table with checks", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractsRenderer(&buf).RenderNetworkContext(nc, checks, FormatTable))
		assert.Contains(t, buf.String(), "CODE")
		assert.Contains(t, buf.String(), "No code at address")
	})

	t.Run("json with checks", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewContractsRenderer(&buf).RenderNetworkContext(nc, checks, FormatJSON))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 4)
		assert.Equal(t, true, decoded[0]["deployed"])
		assert.Equal(t, false, decoded[2]["deployed"])
		assert.Equal(t, "no code at address", decoded[2]["reason"])
	})
}

func TestRenderDeploymentTx(t *testing.T) {
	tx := &domain.DeploymentTx{
		Factory:   common.HexToAddress("0x5b836117aed4ca4aaa4da6c6e6cf4a7ed6fb1f92"),
		Singleton: common.HexToAddress("0xffd41b816f2821e579b4da85c7352bf4f17e4fa5"),
		Owners:    []common.Address{common.HexToAddress("0x1"), common.HexToAddress("0x2")},
		Threshold: 2,
		SaltNonce: big.NewInt(7),
		Data:      []byte{0x16, 0x88, 0xf0, 0xb9},
	}
	cost := &domain.DeploymentCost{Gas: 400000, GasPrice: big.NewInt(60000000), Total: big.NewInt(24000000000000)}

	var buf bytes.Buffer
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderDeploymentTx(tx, cost, "tRBTC", FormatTable))
	out := buf.String()
	assert.Contains(t, out, "2 of 2 owners")
	assert.Contains(t, out, "0x1688f0b9")
	assert.Contains(t, out, "24000000000000 wei tRBTC")
	assert.Contains(t, out, "https://explorer.testnet.rsk.co/address/"+tx.Factory.Hex())
	assert.Contains(t, out, "https://explorer.testnet.rsk.co/address/"+tx.Singleton.Hex())

	buf.Reset()
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderDeploymentTx(tx, nil, "tRBTC", FormatJSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0x1688f0b9", decoded["data"])
	assert.Equal(t, "7", decoded["saltNonce"])
	assert.Equal(t, "https://explorer.testnet.rsk.co/address/"+tx.Factory.Hex(), decoded["toUrl"])
	assert.Equal(t, "https://explorer.testnet.rsk.co/address/"+tx.Singleton.Hex(), decoded["singletonUrl"])
	assert.NotContains(t, decoded, "cost")

	t.Run("no explorer configured", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewSafeRenderer(&buf, config.EnvironmentSettings{}).RenderDeploymentTx(tx, nil, "tRBTC", FormatJSON))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.NotContains(t, decoded, "toUrl")
		assert.NotContains(t, decoded, "singletonUrl")
	})
}

var testnetSettings = config.EnvironmentSettings{NetworkExplorerURL: "https://explorer.testnet.rsk.co"}

func TestRenderMasterCopy(t *testing.T) {
	proxy := common.HexToAddress("0x9999999999999999999999999999999999999999")
	masterCopy := common.HexToAddress("0xffd41b816f2821e579b4da85c7352bf4f17e4fa5")

	var buf bytes.Buffer
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderMasterCopy(proxy, masterCopy, FormatTable))
	assert.Contains(t, buf.String(), masterCopy.Hex())
	assert.Contains(t, buf.String(), "https://explorer.testnet.rsk.co/address/"+masterCopy.Hex())

	buf.Reset()
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderMasterCopy(proxy, masterCopy, FormatJSON))
	assert.JSONEq(t, `{
		"proxy": "`+proxy.Hex()+`",
		"proxyUrl": "https://explorer.testnet.rsk.co/address/`+proxy.Hex()+`",
		"masterCopy": "`+masterCopy.Hex()+`",
		"masterCopyUrl": "https://explorer.testnet.rsk.co/address/`+masterCopy.Hex()+`"
	}`, buf.String())
}

func TestRenderSafeState(t *testing.T) {
	state := &domain.SafeState{
		Address:   common.HexToAddress("0xabc"),
		Version:   "1.3.0",
		Owners:    []common.Address{common.HexToAddress("0x1"), common.HexToAddress("0x2")},
		Threshold: big.NewInt(1),
		Nonce:     big.NewInt(12),
	}

	var buf bytes.Buffer
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderSafeState(state, FormatTable))
	assert.Contains(t, buf.String(), "1 of 2")
	assert.Contains(t, buf.String(), "Owner 2")
	assert.Contains(t, buf.String(), "https://explorer.testnet.rsk.co/address/"+state.Address.Hex())

	buf.Reset()
	require.NoError(t, NewSafeRenderer(&buf, testnetSettings).RenderSafeState(state, FormatYAML))
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.3.0", decoded["version"])
	assert.Equal(t, "12", decoded["nonce"])
	assert.Equal(t, "https://explorer.testnet.rsk.co/address/"+state.Address.Hex(), decoded["addressUrl"])
}
