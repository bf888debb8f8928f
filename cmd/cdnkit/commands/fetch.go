package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/cdnkit/loader"
	"github.com/kbukum/cdnkit/logger"
	"github.com/kbukum/cdnkit/scriptenv"
)

func newFetchCommand() *cobra.Command {
	var (
		pkgVersion string
		path       string
		cdns       []string
		timeout    time.Duration
		output     string
	)

	cmd := &cobra.Command{
		Use:   "fetch <package>",
		Short: "Fetch a library from the first provider that serves it",
		Long: `Fetch a library, trying each CDN provider in order until one succeeds.

The winning URL is printed on success. Use --output to also write the
fetched script to a file. Without --cdn, the order comes from the
loader.order configuration, or the full registry when unset.`,
		Example: `  # Fetch the default entry point of the latest lodash
  cdnkit fetch lodash

  # Pin a version and file
  cdnkit fetch lodash --version 4.17.21 --path lodash.min.js

  # Try unpkg before jsdelivr and save the payload
  cdnkit fetch lodash --cdn unpkg --cdn jsdelivr --output lodash.min.js

  # Fetch a bare module URL (providers like skypack drop the path)
  cdnkit fetch preact --cdn skypack --path ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			shutdown, err := setupObservability(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				// The command result is already decided; a failed
				// telemetry flush only deserves a warning.
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("telemetry flush failed", logger.Fields(logger.FieldError, err.Error()))
				}
			}()

			var handler scriptenv.Handler
			if output != "" {
				handler = func(_ string, body []byte) error {
					return os.WriteFile(output, body, 0o644)
				}
			}

			ldr, err := buildLoader(cfg, handler)
			if err != nil {
				return err
			}

			opts := []loader.Option{
				loader.WithVersion(pkgVersion),
				loader.WithPath(path),
				loader.WithTimeout(timeout),
			}
			order := cdns
			if len(order) == 0 {
				order = cfg.Loader.Order
			}
			if len(order) > 0 {
				opts = append(opts, loader.WithCDNOrder(order...))
			}

			url, err := ldr.Load(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&pkgVersion, "version", loader.DefaultVersion, "package version to fetch")
	cmd.Flags().StringVar(&path, "path", loader.DefaultPath, "file path inside the package")
	cmd.Flags().StringSliceVar(&cdns, "cdn", nil, "provider names to try, in order (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-attempt timeout (0 uses the configured value)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the fetched script to this file")

	return cmd
}
