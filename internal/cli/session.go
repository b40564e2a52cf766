package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/internal/session"
	"github.com/mesh-intelligence/assetdesk/pkg/page"
)

// loadSession fetches the signed-in user when a session endpoint is
// configured. It returns nil otherwise, which pages render anonymously.
func (a *app) loadSession(ctx context.Context) page.Session {
	if !a.settings.SessionEnabled {
		return nil
	}
	p := session.NewProvider(a.settings.Session, nil, a.logger)
	p.Load(ctx)
	return p
}

// resolveView applies the page's session outcome. A login redirect is a
// user error carrying the login location.
func resolveView(v page.View) error {
	switch v.Kind {
	case page.ViewRedirect:
		return userError(fmt.Errorf("login required: %s", v.Location))
	case page.ViewLoading:
		return sysError(errors.New("session still loading"))
	default:
		return nil
	}
}
