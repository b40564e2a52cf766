package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/session"
)

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Whoami asks the session endpoint for the current user. A 401 answer
reports the login location instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := session.NewProvider(a.settings.Session, nil, a.logger)
			p.Load(cmd.Context())

			if loc, ok := p.LoginRedirect(); ok {
				return userError(fmt.Errorf("login required: %s", loc))
			}
			user := p.CurrentUser()
			if user == nil {
				return sysError(errors.New("session unavailable"))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), user)
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.DisplayName())
			return nil
		},
	}
}
