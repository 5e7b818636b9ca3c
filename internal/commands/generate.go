package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/logic"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random key or password",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, config.CommandGenerate),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunGenerate(cfg)
		},
	}

	flags := cmd.Flags()

	flags.IntP("length", "l", 16, "Number of characters, including the custom word")
	flags.IntP("count", "c", 1, "Number of keys to generate")
	flags.Bool("lowercase", true, "Include lowercase letters")
	flags.Bool("uppercase", true, "Include uppercase letters")
	flags.Bool("numbers", true, "Include digits")
	flags.Bool("special", true, "Include special characters")
	flags.Bool("exclude-similar", false, "Leave out look-alike characters (0 O l 1 I)")
	flags.StringP("word", "w", "", "Start the key with this word, re-cased to the enabled letter classes")
	flags.Bool("insecure-fallback", false, "Fall back to a non-cryptographic source if secure randomness fails")

	return cmd
}
