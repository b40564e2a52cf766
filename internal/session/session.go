// Package session resolves the signed-in user with a single request to the
// session endpoint. A 401 turns into a redirect to the login page; any other
// failure leaves the user anonymous.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// Default endpoints of the demo backend.
const (
	DefaultMeURL    = "http://localhost:8000/me"
	DefaultLoginURL = "http://localhost:8000/login"
	DefaultTimeout  = 5 * time.Second
)

// Config names the session endpoints.
type Config struct {
	MeURL    string
	LoginURL string
	Timeout  time.Duration
}

// Provider fetches the current user once and then answers from memory.
// The zero state, before Load, is loading.
type Provider struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	once     sync.Once
	mu       sync.RWMutex
	loaded   bool
	user     *types.User
	redirect string
}

// NewProvider creates a provider. A nil client gets one with cfg.Timeout;
// a nil logger discards output.
func NewProvider(cfg Config, client *http.Client, logger *slog.Logger) *Provider {
	if cfg.MeURL == "" {
		cfg.MeURL = DefaultMeURL
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultLoginURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{cfg: cfg, client: client, logger: logger}
}

// Load performs the session request on its first call. Later calls return
// immediately.
func (p *Provider) Load(ctx context.Context) {
	p.once.Do(func() {
		user, redirect, err := p.fetch(ctx)
		if err != nil {
			p.logger.Warn("fetching user failed", "url", p.cfg.MeURL, "error", err)
		}
		p.mu.Lock()
		p.user = user
		p.redirect = redirect
		p.loaded = true
		p.mu.Unlock()
	})
}

func (p *Provider) fetch(ctx context.Context) (*types.User, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.MeURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		p.logger.Debug("not signed in, redirecting", "location", p.cfg.LoginURL)
		return nil, p.cfg.LoginURL, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, "", fmt.Errorf("decoding user: %w", err)
	}
	return &user, "", nil
}

// CurrentUser returns the signed-in user, or nil.
func (p *Provider) CurrentUser() *types.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// IsLoading reports whether Load has not finished yet.
func (p *Provider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.loaded
}

// LoginRedirect returns the login location when the endpoint answered 401.
func (p *Provider) LoginRedirect() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.redirect, p.redirect != ""
}
