package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rsksmart/safekit/internal/adapters/progress"
	"github.com/rsksmart/safekit/internal/app"
	"github.com/rsksmart/safekit/internal/cli/render"
	"github.com/rsksmart/safekit/internal/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cancelKey holds the func releasing the command timeout
	cancelKey contextKey = "cancel"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safekit",
		Short: "Gnosis Safe contract toolkit for RSK",
		Long: `safekit resolves the Gnosis Safe contracts deployed on RSK and other
EVM networks, encodes Safe deployments and reads Safes from the chain and
from the Safe client gateway.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}

			// .env must be loaded before the network catalog expands ${VARS}
			config.LoadDotEnv(workDir)
			v := config.SetupViper(workDir, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured; ExecuteC releases it whether or not RunE fails
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				ctx = context.WithValue(ctx, cancelKey, cancel)
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("network", "n", "", "Network key or chain ID (e.g. rsk_mainnet, 31)")
	flags.StringP("env", "e", "", "Deployment environment: dev, staging or production")
	flags.String("safe-version", "", "Safe contracts version (default 1.3.0)")
	flags.String("rpc-url", "", "Override the network's RPC URL")
	flags.String("gateway-url", "", "Override the network's Safe client gateway URL")
	flags.Duration("timeout", 0, "Timeout for network calls (default 30s)")
	flags.Bool("json", false, "Output JSON")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, cmd := range []*cobra.Command{
		NewResolveCmd(),
		NewContractsCmd(),
		NewDeployTxCmd(),
		NewSafeCmd(),
		NewMasterCopyCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewNetworksCmd(),
		NewNetworkCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// ExecuteC runs root under ctx and then cancels the timeout context of the
// command that ran. Cobra skips post-run hooks when RunE fails, so this is
// done here rather than in a hook.
func ExecuteC(ctx context.Context, root *cobra.Command) (*cobra.Command, error) {
	cmd, err := root.ExecuteContextC(ctx)
	if cmd != nil && cmd.Context() != nil {
		if cancel, ok := cmd.Context().Value(cancelKey).(context.CancelFunc); ok {
			cancel()
		}
	}
	return cmd, err
}

// newProgressSink keeps JSON output clean and avoids spinners without a terminal
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	switch {
	case v.GetBool("json"):
		return usecase.NopProgress{}
	case v.GetBool("non_interactive"):
		return progress.NewLineSink(os.Stderr)
	default:
		return progress.NewSpinnerSink()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// addOutputFlag registers --output on commands with structured output
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

// outputFormat picks the format from --output, falling back to --json
func outputFormat(cmd *cobra.Command, a *app.App) (render.Format, error) {
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		return render.ParseFormat(f.Value.String())
	}
	if a.Config.JSON {
		return render.FormatJSON, nil
	}
	return render.FormatTable, nil
}
