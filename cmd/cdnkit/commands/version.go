package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/cdnkit/version"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetVersionInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "cdnkit %s\n", version.GetShortVersion())
			if info.GitBranch != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  branch: %s\n", info.GitBranch)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", info.BuildTime)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  go:     %s\n", info.GoVersion)
		},
	}

	return cmd
}
