package cli

import (
	"github.com/rsksmart/safekit/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks safekit knows about",
		Long: `List every network in the built-in catalog with its chain ID and the
RPC endpoint of the active environment. The active network is marked with *.`,
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

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result, format)
		},
	}
	addOutputFlag(cmd)

	cmd.AddCommand(NewNetworksSelectCmd())

	return cmd
}

// NewNetworksSelectCmd creates the networks select subcommand
func NewNetworksSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [key]",
		Short: "Choose the default network",
		Long: `Store the default network in .safekit/config.local.json. Without an
argument an interactive picker is shown.

Examples:
  safekit networks select
  safekit networks select rsk_testnet
  safekit networks select 30`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			}

			result, err := app.SelectNetwork.Run(cmd.Context(), key)
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderSelected(result)
		},
	}
}

// NewNetworkCmd creates the network command
func NewNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect a network",
	}

	show := &cobra.Command{
		Use:   "show [key]",
		Short: "Show a network's settings for the active environment",
		Long: `Show the chain metadata and the service endpoints of a network for the
active environment. Without an argument the active network is shown.

Examples:
  safekit network show
  safekit network show rsk_mainnet --env staging -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd, app)
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			}

			result, err := app.ShowNetwork.Run(cmd.Context(), key)
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetwork(result, format)
		},
	}
	addOutputFlag(show)
	cmd.AddCommand(show)

	return cmd
}
