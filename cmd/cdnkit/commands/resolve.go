package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/cdnkit/loader"
	"github.com/kbukum/cdnkit/resolver"
)

func newResolveCommand() *cobra.Command {
	var (
		pkgVersion string
		path       string
		cdns       []string
	)

	cmd := &cobra.Command{
		Use:   "resolve <package>",
		Short: "Show the URL each provider would serve",
		Long: `Resolve a library against each provider without fetching anything.

Providers are listed in the order the fetch command would try them.`,
		Example: `  # Show candidate URLs for a pinned lodash build
  cdnkit resolve lodash --version 4.17.21 --path lodash.min.js

  # Restrict to specific providers
  cdnkit resolve react --cdn unpkg --cdn skypack`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reg, err := newRegistry(cfg)
			if err != nil {
				return err
			}

			names := cdns
			if len(names) == 0 {
				names = cfg.Loader.Order
			}
			if len(names) == 0 {
				names = reg.Names()
			}

			rc := resolver.Context{Package: args[0], Version: pkgVersion, Path: path}
			for _, name := range names {
				res, ok := reg.Lookup(name)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s (not registered)\n", name)
					continue
				}
				url, err := res.Resolve(rc)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s resolve error: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, url)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pkgVersion, "version", loader.DefaultVersion, "package version to resolve")
	cmd.Flags().StringVar(&path, "path", loader.DefaultPath, "file path inside the package")
	cmd.Flags().StringSliceVar(&cdns, "cdn", nil, "provider names to resolve (repeatable)")

	return cmd
}
