// Package types defines the asset entities, the Catalog and Table interfaces,
// and the standard errors shared by the assetdesk storage backends and CLI.
package types
