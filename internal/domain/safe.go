package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AddressInfo is how the client gateway reports an address, optionally with a display name
type AddressInfo struct {
	Value   string `json:"value"`
	Name    string `json:"name,omitempty"`
	LogoURI string `json:"logoUri,omitempty"`
}

// SafeInfo is the subset of the client gateway's Safe payload this tool reads
type SafeInfo struct {
	Address         AddressInfo   `json:"address"`
	ChainID         string        `json:"chainId"`
	Nonce           uint64        `json:"nonce"`
	Threshold       uint64        `json:"threshold"`
	Owners          []AddressInfo `json:"owners"`
	Implementation  *AddressInfo  `json:"implementation,omitempty"`
	FallbackHandler *AddressInfo  `json:"fallbackHandler,omitempty"`
	Version         string        `json:"version,omitempty"`
}

// ImplementationAddress returns the master copy behind the Safe, if the gateway knows it
func (s *SafeInfo) ImplementationAddress() (common.Address, bool) {
	if s == nil || s.Implementation == nil || !common.IsHexAddress(s.Implementation.Value) {
		return common.Address{}, false
	}
	return common.HexToAddress(s.Implementation.Value), true
}

// SafeState is a Safe's configuration as read directly from the chain
type SafeState struct {
	Address   common.Address   `json:"address"`
	Version   string           `json:"version"`
	Owners    []common.Address `json:"owners"`
	Threshold *big.Int         `json:"threshold"`
	Nonce     *big.Int         `json:"nonce"`
}

// DeploymentTx is an unsigned transaction that deploys a new Safe proxy
type DeploymentTx struct {
	Factory     common.Address   `json:"factory"`
	Singleton   common.Address   `json:"singleton"`
	Owners      []common.Address `json:"owners"`
	Threshold   uint64           `json:"threshold"`
	SaltNonce   *big.Int         `json:"saltNonce"`
	Initializer []byte           `json:"-"`
	Data        []byte           `json:"-"`
}

// DeploymentCost is a doubled gas estimate priced at the network gas price
type DeploymentCost struct {
	Gas      uint64   `json:"gas"`
	GasPrice *big.Int `json:"gasPrice"`
	Total    *big.Int `json:"total"`
}
