package cli

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/cli/render"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/spf13/cobra"
)

// NewSafeCmd creates the safe command group
func NewSafeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safe",
		Short: "Read deployed Safes",
	}
	cmd.AddCommand(NewSafeInfoCmd())
	return cmd
}

// NewSafeInfoCmd creates the safe info subcommand
func NewSafeInfoCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "info <address>",
		Short: "Read a Safe's owners, threshold and nonce from the chain",
		Long: `Bind the Safe ABI of the given version to a Safe address and read its
VERSION, owners, threshold and nonce over RPC.

Examples:
  safekit safe info 0x3E5c63644E683549055b9Be8653de26E0B4CD36E
  safekit safe info 0x3E5c63644E683549055b9Be8653de26E0B4CD36E --version 1.2.0`,
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

			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			if version == "" {
				version = app.Config.SafeVersion
			}

			backend, err := app.Backend(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			state, err := app.ReadSafe.Run(cmd.Context(), usecase.ReadSafeParams{
				Backend:     backend,
				Address:     address,
				SafeVersion: version,
			})
			if err != nil {
				return err
			}

			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Settings).RenderSafeState(state, format)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Safe version whose ABI to use (default: the configured safe version)")
	addOutputFlag(cmd)

	return cmd
}

// NewMasterCopyCmd creates the master-copy command
func NewMasterCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master-copy <proxy>",
		Short: "Look up the singleton behind a Safe proxy",
		Long: `Ask the active environment's Safe client gateway which master copy a
Safe proxy delegates to.`,
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

			proxy, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			masterCopy, err := app.GetMasterCopy.Run(cmd.Context(), proxy)
			if err != nil {
				return err
			}

			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Settings).RenderMasterCopy(proxy, masterCopy, format)
		},
	}
	addOutputFlag(cmd)

	return cmd
}

// NewDeployTxCmd creates the deploy-tx command
func NewDeployTxCmd() *cobra.Command {
	var (
		owners    []string
		threshold uint64
		salt      string
		from      string
		estimate  bool
	)

	cmd := &cobra.Command{
		Use:   "deploy-tx",
		Short: "Encode a Safe deployment transaction",
		Long: `Encode the ProxyFactory.createProxyWithNonce call that deploys and sets
up a new Safe on the active network. The transaction is printed, not sent.
With --estimate the node estimates gas, which is doubled and priced at the
network gas price.

Examples:
  safekit deploy-tx --owner 0xA... --owner 0xB... --threshold 2
  safekit deploy-tx --owner 0xA... --threshold 1 --salt 0x2a --estimate`,
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

			params, err := parseDeploymentParams(owners, threshold, salt)
			if err != nil {
				return err
			}

			var backend usecase.ChainBackend
			if estimate {
				if backend, err = app.Backend(cmd.Context()); err != nil {
					return err
				}
				defer backend.Close()
			}

			if _, err := app.Instantiate(cmd.Context(), backend); err != nil {
				return err
			}

			tx, err := app.BuildDeploymentTx.Build(params)
			if err != nil {
				return err
			}

			var cost *domain.DeploymentCost
			if estimate {
				sender := params.Owners[0]
				if from != "" {
					if sender, err = parseAddress(from); err != nil {
						return err
					}
				}
				if cost, err = app.BuildDeploymentTx.EstimateDeploymentCost(cmd.Context(), backend, tx, sender); err != nil {
					return err
				}
			}

			symbol := app.Config.Network.Network.NativeCoin.Symbol
			return render.NewSafeRenderer(cmd.OutOrStdout(), app.Config.Settings).RenderDeploymentTx(tx, cost, symbol, format)
		},
	}

	cmd.Flags().StringSliceVar(&owners, "owner", nil, "Safe owner address (repeatable)")
	cmd.Flags().Uint64Var(&threshold, "threshold", 1, "Number of owner confirmations required")
	cmd.Flags().StringVar(&salt, "salt", "0", "Salt nonce, decimal or 0x-prefixed hex")
	cmd.Flags().StringVar(&from, "from", "", "Sender used for gas estimation (default: the first owner)")
	cmd.Flags().BoolVar(&estimate, "estimate", false, "Estimate gas and cost against the RPC node")
	addOutputFlag(cmd)
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func parseDeploymentParams(owners []string, threshold uint64, salt string) (usecase.DeploymentTxParams, error) {
	params := usecase.DeploymentTxParams{Threshold: threshold}
	for _, owner := range owners {
		addr, err := parseAddress(owner)
		if err != nil {
			return params, err
		}
		params.Owners = append(params.Owners, addr)
	}

	nonce, ok := new(big.Int).SetString(salt, 0)
	if !ok || nonce.Sign() < 0 {
		return params, fmt.Errorf("invalid salt nonce %q", salt)
	}
	params.SaltNonce = nonce
	return params, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
