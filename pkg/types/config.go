package types

import "errors"

// Config holds backend selection and parameters for Catalog.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// PageSize is the initial page size of asset listings. Zero means the
	// engine default.
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrPageSizeInvalid = errors.New("page size must be one of 5, 10, 20, 50")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// validPageSizes mirrors the page sizes offered by asset listings.
var validPageSizes = map[int]bool{5: true, 10: true, 20: true, 50: true}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.PageSize != 0 && !validPageSizes[c.PageSize] {
		return ErrPageSizeInvalid
	}
	return nil
}
