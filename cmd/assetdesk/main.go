// Command assetdesk browses and manages the asset catalog.
package main

import (
	"os"

	"github.com/mesh-intelligence/assetdesk/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
