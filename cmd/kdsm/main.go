// Command kdsm encrypts and decrypts text with the KDSM cipher and generates keys.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/kdsm/internal/commands"
	"github.com/idelchi/kdsm/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
