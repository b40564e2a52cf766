package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/pkg/assetdesk"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the assetdesk version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "assetdesk v%s\nmodule: %s\n", assetdesk.Version, assetdesk.ModulePath)
			return nil
		},
	}
}
