// Package commands provides the command-line interface for the kdsm tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/kdsm/internal/config"
)

// preRun returns a PreRunE handler that records the command, resolves positional
// args into cfg.Files and validates the configuration.
func preRun(cfg *config.Config, command string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Command = command
		cfg.Decrypt = command == config.CommandDecrypt

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cfg.Validate()
	}
}
