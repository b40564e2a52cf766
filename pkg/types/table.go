package types

import "errors"

// Table provides uniform CRUD operations for a single asset type. Get and
// Fetch return any; callers type-assert to the concrete entity struct
// (*Vehicle or *BatteryPack).
type Table interface {
	// Get retrieves the asset with the given asset tag.
	// Returns ErrNotFound if no asset has that tag.
	Get(tag string) (any, error)

	// Set creates or updates an asset. When tag is empty the entity's own
	// asset tag is used. Returns the asset tag stored.
	Set(tag string, data any) (string, error)

	// Delete removes the asset with the given tag.
	// Returns ErrNotFound if no asset has that tag.
	Delete(tag string) error

	// Fetch returns all assets matching the filter. An empty filter returns
	// every asset in the table. Recognized keys: "status_label", "company",
	// "limit", "offset".
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("asset not found")
	ErrInvalidID     = errors.New("invalid asset tag")
	ErrInvalidData   = errors.New("invalid asset data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
