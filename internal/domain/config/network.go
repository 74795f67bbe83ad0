package config

import (
	"fmt"
	"math/big"
	"strings"
)

// Environment selects one of the per-network deployment bundles
type Environment string

const (
	EnvDev        Environment = "dev"
	EnvStaging    Environment = "staging"
	EnvProduction Environment = "production"
)

// ParseEnvironment maps the deployment-environment signal onto an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development", "local":
		return EnvDev, nil
	case "staging":
		return EnvStaging, nil
	case "production", "prod", "":
		return EnvProduction, nil
	}
	return "", fmt.Errorf("unknown environment %q (expected dev, staging or production)", s)
}

type Wallet string

const (
	WalletMetamask      Wallet = "metamask"
	WalletWalletConnect Wallet = "walletConnect"
	WalletTrezor        Wallet = "trezor"
	WalletLedger        Wallet = "ledger"
	WalletTrust         Wallet = "trust"
	WalletFortmatic     Wallet = "fortmatic"
	WalletPortis        Wallet = "portis"
	WalletAuthereum     Wallet = "authereum"
	WalletTorus         Wallet = "torus"
	WalletCoinbase      Wallet = "coinbase"
	WalletWalletLink    Wallet = "walletLink"
	WalletOpera         Wallet = "opera"
	WalletOperaTouch    Wallet = "operaTouch"
	WalletLattice       Wallet = "lattice"
	WalletKeystone      Wallet = "keystone"
)

// AllWallets lists the wallets a network can disable
func AllWallets() []Wallet {
	return []Wallet{
		WalletMetamask, WalletWalletConnect, WalletTrezor, WalletLedger, WalletTrust,
		WalletFortmatic, WalletPortis, WalletAuthereum, WalletTorus, WalletCoinbase,
		WalletWalletLink, WalletOpera, WalletOperaTouch, WalletLattice, WalletKeystone,
	}
}

type Feature string

const (
	FeatureERC721              Feature = "ERC721"
	FeatureERC1155             Feature = "ERC1155"
	FeatureSafeApps            Feature = "SAFE_APPS"
	FeatureContractInteraction Feature = "CONTRACT_INTERACTION"
	FeatureDomainLookup        Feature = "DOMAIN_LOOKUP"
	FeatureSpendingLimit       Feature = "SPENDING_LIMIT"
)

// AllFeatures lists the features a network can disable
func AllFeatures() []Feature {
	return []Feature{
		FeatureERC721, FeatureERC1155, FeatureSafeApps,
		FeatureContractInteraction, FeatureDomainLookup, FeatureSpendingLimit,
	}
}

// GasPriceOracle describes an HTTP endpoint returning gas prices
type GasPriceOracle struct {
	URL          string `toml:"url" json:"url" yaml:"url"`
	GasParameter string `toml:"gas_parameter" json:"gasParameter" yaml:"gasParameter"`
	GweiFactor   string `toml:"gwei_factor" json:"gweiFactor" yaml:"gweiFactor"`
}

// EnvironmentSettings holds the service endpoints for one deployment environment
type EnvironmentSettings struct {
	ClientGatewayURL      string          `toml:"client_gateway_url" json:"clientGatewayUrl" yaml:"clientGatewayUrl"`
	TxServiceURL          string          `toml:"tx_service_url" json:"txServiceUrl" yaml:"txServiceUrl"`
	SafeURL               string          `toml:"safe_url" json:"safeUrl" yaml:"safeUrl"`
	GasPrice              *uint64         `toml:"gas_price" json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	GasPriceOracle        *GasPriceOracle `toml:"gas_price_oracle" json:"gasPriceOracle,omitempty" yaml:"gasPriceOracle,omitempty"`
	RPCServiceURL         string          `toml:"rpc_service_url" json:"rpcServiceUrl" yaml:"rpcServiceUrl"`
	SafeAppsURL           string          `toml:"safe_apps_url" json:"safeAppsUrl" yaml:"safeAppsUrl"`
	SafeAppsRPCServiceURL string          `toml:"safe_apps_rpc_service_url" json:"safeAppsRpcServiceUrl,omitempty" yaml:"safeAppsRpcServiceUrl,omitempty"`
	NetworkExplorerName   string          `toml:"network_explorer_name" json:"networkExplorerName" yaml:"networkExplorerName"`
	NetworkExplorerURL    string          `toml:"network_explorer_url" json:"networkExplorerUrl" yaml:"networkExplorerUrl"`
	NetworkExplorerAPIURL string          `toml:"network_explorer_api_url" json:"networkExplorerApiUrl" yaml:"networkExplorerApiUrl"`
}

// FixedGasPrice returns the configured gas price in wei, if any
func (s EnvironmentSettings) FixedGasPrice() (*big.Int, bool) {
	if s.GasPrice == nil {
		return nil, false
	}
	return new(big.Int).SetUint64(*s.GasPrice), true
}

// ExplorerLinkKind selects the explorer page type
type ExplorerLinkKind string

const (
	ExplorerTx      ExplorerLinkKind = "tx"
	ExplorerAddress ExplorerLinkKind = "address"
)

// ExplorerLink builds a block explorer URL for a transaction hash or an
// address. It is empty when the environment has no explorer.
func (s EnvironmentSettings) ExplorerLink(kind ExplorerLinkKind, hash string) string {
	if s.NetworkExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.NetworkExplorerURL, "/"), kind, hash)
}

// EnvironmentBundle holds the three deployment environments of a network.
// All three share EnvironmentSettings, so they always define the same keys.
type EnvironmentBundle struct {
	Dev        EnvironmentSettings `toml:"dev" json:"dev" yaml:"dev"`
	Staging    EnvironmentSettings `toml:"staging" json:"staging" yaml:"staging"`
	Production EnvironmentSettings `toml:"production" json:"production" yaml:"production"`
}

// For returns the settings for one environment
func (b EnvironmentBundle) For(env Environment) EnvironmentSettings {
	switch env {
	case EnvDev:
		return b.Dev
	case EnvStaging:
		return b.Staging
	default:
		return b.Production
	}
}

type NativeCoin struct {
	Address  string `toml:"address" json:"address" yaml:"address"`
	Name     string `toml:"name" json:"name" yaml:"name"`
	Symbol   string `toml:"symbol" json:"symbol" yaml:"symbol"`
	Decimals int    `toml:"decimals" json:"decimals" yaml:"decimals"`
	LogoURI  string `toml:"logo_uri" json:"logoUri" yaml:"logoUri"`
}

// NetworkInfo is the presentation metadata of a chain
type NetworkInfo struct {
	ID              uint64     `toml:"id" json:"id" yaml:"id"`
	BackgroundColor string     `toml:"background_color" json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string     `toml:"text_color" json:"textColor" yaml:"textColor"`
	Label           string     `toml:"label" json:"label" yaml:"label"`
	IsTestNet       bool       `toml:"is_testnet" json:"isTestNet" yaml:"isTestNet"`
	NativeCoin      NativeCoin `toml:"native_coin" json:"nativeCoin" yaml:"nativeCoin"`
}

// NetworkConfig is one entry of the network catalog
type NetworkConfig struct {
	Key              string            `toml:"-" json:"key" yaml:"key"`
	Network          NetworkInfo       `toml:"network" json:"network" yaml:"network"`
	Environment      EnvironmentBundle `toml:"environment" json:"environment" yaml:"environment"`
	DisabledWallets  []Wallet          `toml:"disabled_wallets" json:"disabledWallets" yaml:"disabledWallets"`
	DisabledFeatures []Feature         `toml:"disabled_features" json:"disabledFeatures" yaml:"disabledFeatures"`
}

// ChainID is a shorthand for Network.ID
func (n *NetworkConfig) ChainID() uint64 { return n.Network.ID }

func (n *NetworkConfig) IsWalletEnabled(w Wallet) bool {
	for _, d := range n.DisabledWallets {
		if strings.EqualFold(string(d), string(w)) {
			return false
		}
	}
	return true
}

func (n *NetworkConfig) IsFeatureEnabled(f Feature) bool {
	for _, d := range n.DisabledFeatures {
		if d == f {
			return false
		}
	}
	return true
}
