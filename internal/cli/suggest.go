package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/pkg/suggest"
)

type suggestFlags struct {
	down   int
	up     int
	choose bool
}

func (a *app) newSuggestCmd() *cobra.Command {
	var f suggestFlags
	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Search asset tags across the catalog",
		Long: `Suggest filters every asset tag by a case-insensitive substring match.
--down and --up move the highlight the way the arrow keys do, wrapping at
either end, and --select takes the highlighted entry.

Example:
  assetdesk suggest vh
  assetdesk suggest 10 --down 2 --select`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer cat.Detach()

			items, err := pages.Suggestions(cat)
			if err != nil {
				return classify(err)
			}
			box := suggest.New(items)
			var query string
			if len(args) == 1 {
				query = args[0]
			}
			box.SetQuery(query)
			for i := 0; i < f.down; i++ {
				box.Down()
			}
			for i := 0; i < f.up; i++ {
				box.Up()
			}

			out := cmd.OutOrStdout()
			if f.choose {
				s, ok := box.Select()
				if !ok {
					return userError(errors.New("no suggestion highlighted"))
				}
				if a.flags.jsonMode {
					return writeJSON(out, s)
				}
				fmt.Fprintf(out, "%s\t%s\n", s.Title, s.DisplayCategory)
				return nil
			}

			if a.flags.jsonMode {
				return writeJSON(out, suggestDoc{
					Query:       box.Query(),
					Highlighted: box.Highlighted(),
					Options:     box.Options(),
				})
			}
			if len(box.Options()) == 0 {
				fmt.Fprintln(out, "No matches.")
				return nil
			}
			for i, s := range box.Options() {
				mark := " "
				if i == box.Highlighted() {
					mark = ">"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", mark, s.Title, s.DisplayCategory)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&f.down, "down", 0, "move the highlight down n times")
	cmd.Flags().IntVar(&f.up, "up", 0, "move the highlight up n times")
	cmd.Flags().BoolVar(&f.choose, "select", false, "take the highlighted suggestion")
	return cmd
}

type suggestDoc struct {
	Query       string               `json:"query"`
	Highlighted int                  `json:"highlighted"`
	Options     []suggest.Suggestion `json:"options"`
}
