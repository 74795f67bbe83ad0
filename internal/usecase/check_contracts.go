package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

const codeCheckTimeout = 5 * time.Second

// ContractCheck is the outcome of looking for bytecode at a resolved address
type ContractCheck struct {
	Instance *ContractInstance
	Deployed bool
	Reason   string
}

// CheckContracts verifies that every contract of a NetworkContext has code on-chain
type CheckContracts struct {
	progress ProgressSink
}

// NewCheckContracts creates a new CheckContracts use case
func NewCheckContracts(progress ProgressSink) *CheckContracts {
	return &CheckContracts{progress: progress}
}

// Run checks each contract in turn. RPC failures are reported per contract, not returned.
func (uc *CheckContracts) Run(ctx context.Context, backend bind.ContractCaller, nc *NetworkContext) []ContractCheck {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify", Message: "Checking contract code", Spinner: true})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verify"})

	checks := make([]ContractCheck, 0, 4)
	for _, instance := range nc.Instances() {
		check := ContractCheck{Instance: instance}

		callCtx, cancel := context.WithTimeout(ctx, codeCheckTimeout)
		code, err := backend.CodeAt(callCtx, instance.Address(), nil)
		cancel()

		switch {
		case err != nil:
			check.Reason = "failed to check code: " + err.Error()
		case len(code) == 0:
			check.Reason = "no code at address"
			uc.progress.Error(fmt.Sprintf("No code for %s at %s", instance.Role(), instance.Address().Hex()))
		default:
			check.Deployed = true
		}
		checks = append(checks, check)
	}
	return checks
}
