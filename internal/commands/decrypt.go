package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a message or text files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, config.CommandDecrypt),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().StringP("message", "m", "", `Decrypt this message and print the result ("-" reads stdin)`)

	return cmd
}
