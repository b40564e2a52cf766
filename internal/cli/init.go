package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the demo catalog",
		Long: `Init writes a default config.yaml to the config directory if none exists
and attaches the catalog once. A data directory without catalog files is
seeded with the demo vehicles and battery packs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := writeConfigIfMissing(a.configDir)
			if err != nil {
				return sysError(err)
			}
			if written {
				a.logger.Info("wrote default config", "path", paths.ConfigFile(a.configDir))
			}

			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := cat.Detach(); err != nil {
				return sysError(fmt.Errorf("detach catalog: %w", err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", paths.ConfigFile(a.configDir))
			fmt.Fprintf(out, "Data:   %s\n", a.settings.DataDir)
			return nil
		},
	}
}
