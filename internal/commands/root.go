package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/logging"
)

// EnvPrefix prefixes every environment variable bound to a flag.
const EnvPrefix = "KDSM"

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "kdsm [flags] command [flags]",
		Short: "Text obfuscation utility",
		Long: `A text obfuscation utility built on the KDSM keyed shift cipher.
Provides commands for key generation, encryption, and decryption of messages and text files.

KDSM is not authenticated encryption: a wrong key yields unrelated text without any error.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bind(cmd, cfg)
		},
	}

	root.SetVersionTemplate("{{ .Version }}\n")

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.String("log-level", logging.DefaultLevel, "Diagnostic log level (trace, debug, info, warn, error, off)")

	flags.StringP("key", "k", "", "Cipher key")
	flags.StringP("key-file", "f", "", "Path to a file holding the cipher key")
	flags.Bool("require-key", true, "Refuse to run without a key instead of seeding from the clock")

	flags.Bool("delete", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of each input to its output")
	flags.String("encrypt-ext", ".kdsm", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	flags.StringSlice("include", nil, "Only process walked files matching these find -path patterns")
	flags.StringSlice("exclude", nil, "Skip walked files matching these find -path patterns")
	flags.String("include-from", "", "JSONC file with an array of include patterns")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	root.AddCommand(NewEncryptCommand(cfg), NewDecryptCommand(cfg), NewGenerateCommand(cfg))

	return root
}

// bind loads flags and KDSM_* environment variables into cfg.
func bind(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
