package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/internal/tui"
	"github.com/mesh-intelligence/assetdesk/pkg/page"
)

func (a *app) newBrowseCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "browse <asset>",
		Short: "Browse an asset list interactively",
		Long: `Browse opens an asset list page full screen. Press / to search, s to sort
the current column, space to select a row and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer cat.Detach()

			l, err := pages.Open(cat, args[0], pages.Options{
				Filter:   f.filter(),
				PageSize: a.settings.PageSize,
				Navigator: page.NavigatorFunc(func(href string) {
					a.logger.Info("navigate", "href", href)
				}),
			})
			if err != nil {
				return classify(err)
			}
			view := l.Build(a.loadSession(cmd.Context()))
			if err := resolveView(view); err != nil {
				return err
			}
			if f.search != "" {
				l.Table().SetSearchText(f.search)
			}

			if err := tui.Run(cmd.Context(), l, view.User, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return sysError(fmt.Errorf("browse: %w", err))
			}
			for _, r := range l.SelectedRecords() {
				a.logger.Debug("selected on exit", "record", r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.search, "search", "", "initial search text")
	cmd.Flags().StringVar(&f.status, "status", "", "only load assets with this status")
	cmd.Flags().StringVar(&f.company, "company", "", "only load assets from this company")
	return cmd
}
