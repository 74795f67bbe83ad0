package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDeploymentNotFound is returned when no deployment record exists for a role on a chain
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrNotInitialized is returned when contract accessors are used before any instantiation
	ErrNotInitialized = errors.New("contracts not initialized")

	// ErrChainInfoUnavailable is returned when the client gateway can't tell us a Safe's implementation
	ErrChainInfoUnavailable = errors.New("chain info unavailable")

	// ErrGasEstimation is returned when the node fails to estimate gas
	ErrGasEstimation = errors.New("gas estimation failed")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrChainIDMismatch is returned when the node reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrGasPriceUnavailable is returned when neither a fixed gas price nor an oracle is configured
	ErrGasPriceUnavailable = errors.New("neither gasPrice nor gasPriceOracle were set")
)

// NetworkNotFoundErr reports an unknown network key or chain ID. Available
// lists the catalog keys, when known.
type NetworkNotFoundErr struct {
	Key       string
	ChainID   uint64
	Available []string
}

func (e NetworkNotFoundErr) Error() string {
	msg := fmt.Sprintf("no network configured for chain ID %d", e.ChainID)
	if e.Key != "" {
		msg = fmt.Sprintf("network %q not found", e.Key)
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}

func (e NetworkNotFoundErr) Unwrap() error { return ErrNotFound }

// NoDeploymentErr reports that a role has no deployment on a chain for the requested version.
// Available lists the versions the chain's source does carry for the role.
type NoDeploymentErr struct {
	Role      ContractRole
	ChainID   uint64
	Version   string
	Available []string
}

func (e NoDeploymentErr) Error() string {
	msg := fmt.Sprintf("no %s deployment for chain %d", e.Role, e.ChainID)
	if e.Version != "" {
		msg += fmt.Sprintf(" (version %s)", e.Version)
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf("; available versions: %s", strings.Join(e.Available, ", "))
	}
	return msg
}

func (e NoDeploymentErr) Unwrap() error { return ErrDeploymentNotFound }

type ChainInfoUnavailableErr struct {
	Proxy common.Address
	Err   error
}

func (e ChainInfoUnavailableErr) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not get master copy address for proxy %s: %v", e.Proxy.Hex(), e.Err)
	}
	return fmt.Sprintf("could not get master copy address for proxy %s: no implementation reported", e.Proxy.Hex())
}

func (e ChainInfoUnavailableErr) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrChainInfoUnavailable, e.Err}
	}
	return []error{ErrChainInfoUnavailable}
}

type GasEstimationErr struct {
	To  common.Address
	Err error
}

func (e GasEstimationErr) Error() string {
	return fmt.Sprintf("failed to estimate gas for call to %s: %v", e.To.Hex(), e.Err)
}

func (e GasEstimationErr) Unwrap() []error { return []error{ErrGasEstimation, e.Err} }
