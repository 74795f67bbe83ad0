package cli

import (
	"fmt"

	"github.com/rsksmart/safekit/internal/cli/render"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	var (
		chainID uint64
		version string
	)

	cmd := &cobra.Command{
		Use:   "resolve <role>",
		Short: "Resolve the deployment of a Safe contract",
		Long: `Resolve which deployment serves a Safe contract role on a chain, without
contacting the chain. RSK mainnet and testnet use the pinned RSK deployments;
other chains use the canonical Safe deployments, with the L2 singleton from
version 1.3.0.

Roles: safe-singleton, safe-singleton-l2, proxy-factory, fallback-handler,
multi-send

Examples:
  safekit resolve safe-singleton
  safekit resolve proxy-factory --chain-id 1 --version 1.1.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd, app)
			if err != nil {
				return err
			}

			role, err := domain.ParseContractRole(args[0])
			if err != nil {
				return err
			}

			resolved, err := app.ResolveContract.Run(cmd.Context(), usecase.ResolveContractParams{
				Role:    role,
				ChainID: chainID,
				Version: version,
			})
			if err != nil {
				return err
			}

			return render.NewContractsRenderer(cmd.OutOrStdout()).RenderResolved(resolved, format)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain to resolve for (default: the active network)")
	cmd.Flags().StringVar(&version, "version", "", "Safe version (default: the configured safe version)")
	addOutputFlag(cmd)

	return cmd
}

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Instantiate the Safe contracts of the active network",
		Long: `Connect to the active network's RPC node, check its chain ID and bind the
Safe singleton, proxy factory, fallback handler and MultiSend contracts.
With --verify each address is checked for deployed bytecode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd, app)
			if err != nil {
				return err
			}

			backend, nc, err := app.Connect(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			var checks []usecase.ContractCheck
			if verify {
				checks = app.CheckContracts.Run(cmd.Context(), backend, nc)
			}

			if err := render.NewContractsRenderer(cmd.OutOrStdout()).RenderNetworkContext(nc, checks, format); err != nil {
				return err
			}

			if missing := lo.CountBy(checks, func(c usecase.ContractCheck) bool { return !c.Deployed }); missing > 0 {
				return fmt.Errorf("%d of %d Safe contracts have no code on chain %d", missing, len(checks), nc.ChainID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Check that every contract has code on-chain")
	addOutputFlag(cmd)

	return cmd
}
