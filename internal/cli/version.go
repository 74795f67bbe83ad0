package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X github.com/rsksmart/safekit/internal/cli.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of safekit",
		RunE: func(cmd *cobra.Command, args []string) error {
			// runs without the app, so --json is read straight from the flags
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo{Version: Version, Commit: Commit, Date: Date})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "safekit version %s\n", Version)
			if Commit != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\nbuilt:  %s\n", Commit, Date)
			}
			return nil
		},
	}
}
