package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [paths...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt a message or text files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, config.CommandEncrypt),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().StringP("message", "m", "", `Encrypt this message and print the result ("-" reads stdin)`)
	cmd.Flags().Bool("verify", true, "Fail instead of writing ciphertext that would not decrypt back")

	return cmd
}
