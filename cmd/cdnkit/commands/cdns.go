package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/cdnkit/resolver"
)

func newCDNsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cdns",
		Short: "List registered CDN providers",
		Long: `List the CDN providers in registration order.

The list contains the built-in providers plus any custom providers from
the configuration file. Template providers show their URL pattern.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reg, err := newRegistry(cfg)
			if err != nil {
				return err
			}

			for _, name := range reg.Names() {
				res, ok := reg.Lookup(name)
				if !ok {
					continue
				}
				if tpl, isTemplate := res.(resolver.Template); isTemplate {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, tpl.Pattern)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
			}
			return nil
		},
	}

	return cmd
}
