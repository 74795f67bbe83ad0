package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractRole identifies which Safe contract a deployment record describes
type ContractRole string

const (
	RoleSafeSingleton   ContractRole = "safe-singleton"
	RoleSafeSingletonL2 ContractRole = "safe-singleton-l2"
	RoleProxyFactory    ContractRole = "proxy-factory"
	RoleFallbackHandler ContractRole = "fallback-handler"
	RoleMultiSend       ContractRole = "multi-send"
)

// AllRoles lists every role in a stable order
func AllRoles() []ContractRole {
	return []ContractRole{
		RoleSafeSingleton,
		RoleSafeSingletonL2,
		RoleProxyFactory,
		RoleFallbackHandler,
		RoleMultiSend,
	}
}

func (r ContractRole) String() string { return string(r) }

// ParseContractRole accepts the canonical role name and a few common aliases
func ParseContractRole(s string) (ContractRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe-singleton", "singleton", "safe", "mastercopy", "master-copy":
		return RoleSafeSingleton, nil
	case "safe-singleton-l2", "singleton-l2", "safe-l2":
		return RoleSafeSingletonL2, nil
	case "proxy-factory", "proxyfactory", "factory":
		return RoleProxyFactory, nil
	case "fallback-handler", "fallbackhandler", "handler":
		return RoleFallbackHandler, nil
	case "multi-send", "multisend":
		return RoleMultiSend, nil
	}
	return "", fmt.Errorf("unknown contract role %q", s)
}

// DeploymentRecord describes one released version of one Safe contract
type DeploymentRecord struct {
	ContractName     string            `json:"contractName"`
	Version          string            `json:"version"`
	Released         bool              `json:"released"`
	DefaultAddress   string            `json:"defaultAddress"`
	NetworkAddresses map[string]string `json:"networkAddresses"`
	ABI              json.RawMessage   `json:"abi"`
}

// AddressFor returns the chain-specific address, or the default one when the chain has no entry
func (d *DeploymentRecord) AddressFor(chainID uint64) common.Address {
	if addr, ok := d.NetworkAddresses[strconv.FormatUint(chainID, 10)]; ok && addr != "" {
		return common.HexToAddress(addr)
	}
	return common.HexToAddress(d.DefaultAddress)
}

// HasNetwork reports whether the record carries an explicit address for the chain
func (d *DeploymentRecord) HasNetwork(network string) bool {
	_, ok := d.NetworkAddresses[network]
	return ok
}

// Clone returns a copy that callers may mutate freely
func (d *DeploymentRecord) Clone() *DeploymentRecord {
	cp := *d
	cp.NetworkAddresses = make(map[string]string, len(d.NetworkAddresses))
	for k, v := range d.NetworkAddresses {
		cp.NetworkAddresses[k] = v
	}
	cp.ABI = append(json.RawMessage(nil), d.ABI...)
	return &cp
}

// DeploymentFilter narrows a registry lookup. Version is a semver constraint,
// Network a chain ID string; zero values match anything. Released defaults to true.
type DeploymentFilter struct {
	Version  string
	Network  string
	Released *bool
}

// DeploymentSourceKind tags where a resolved record came from
type DeploymentSourceKind string

const (
	SourceLocal    DeploymentSourceKind = "local"
	SourceExternal DeploymentSourceKind = "external"
)

// ResolvedDeployment is a deployment record bound to the chain it was resolved for
type ResolvedDeployment struct {
	// RequestedRole is what the caller asked for; Role is what was served
	// (a Safe singleton request may be served by the L2 singleton).
	RequestedRole ContractRole
	Role          ContractRole
	ChainID       uint64
	Source        DeploymentSourceKind
	Record        *DeploymentRecord
	Address       common.Address
}
