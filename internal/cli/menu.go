package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/pkg/page"
)

func (a *app) newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [pathname]",
		Short: "Print the sidebar menu for a page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := "/dashboard"
			if len(args) == 1 {
				pathname = args[0]
			}
			groups := page.MenuList(pathname)
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(out, groups)
			}
			for _, g := range groups {
				if g.Label != "" {
					fmt.Fprintln(out, g.Label)
				}
				for _, m := range g.Menus {
					mark := " "
					if m.Active {
						mark = "*"
					}
					fmt.Fprintf(out, "%s %s (%s)\n", mark, m.Label, m.Href)
					for _, s := range m.Submenus {
						fmt.Fprintf(out, "    %s (%s)\n", s.Label, s.Href)
					}
				}
			}
			return nil
		},
	}
}
