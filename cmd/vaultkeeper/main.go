// Command vaultkeeper automates a Dropbox-hosted Obsidian vault.
package main

import (
	"os"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
