package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/cdnkit/version"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cdnkit",
		Short: "cdnkit - fetch libraries from CDNs with provider fallback",
		Long: `cdnkit fetches JavaScript libraries from public CDN providers, trying
each provider in order until one serves the script.

Built-in providers:
  - jsdelivr: https://cdn.jsdelivr.net/npm/...
  - unpkg:    https://unpkg.com/...
  - cdnjs:    https://cdnjs.cloudflare.com/ajax/libs/...
  - skypack:  https://cdn.skypack.dev/...

Custom providers and the default fallback order can be set through the
configuration file (cdnkit.yml) or CDNKIT_* environment variables.`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newCDNsCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
