// Package assetdesk holds build metadata shared by the CLI and the mage targets.
package assetdesk

// Version is the release version; mage build overrides it with -ldflags.
var Version = "0.1.0"

// ModulePath is the Go module path of the project.
const ModulePath = "github.com/mesh-intelligence/assetdesk"
