// Package config holds the command-line configuration and its validation rules.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idelchi/kdsm/internal/keygen"
)

// Command names, recorded in Config.Command by each subcommand.
const (
	CommandEncrypt  = "encrypt"
	CommandDecrypt  = "decrypt"
	CommandGenerate = "generate"
)

// ErrMissingKey is returned when a key is required but neither --key nor --key-file was given.
var ErrMissingKey = errors.New("a key is required: pass --key or --key-file, or disable --require-key")

// Config holds the application configuration.
type Config struct {
	// Show prints the configuration and exits.
	Show bool

	// Parallel bounds the number of files processed at once.
	Parallel int `validate:"min=1" label:"--parallel"`

	// Quiet suppresses non-error output.
	Quiet bool

	// Delete removes each input after it was processed successfully.
	Delete bool

	// Dry lists what would be processed without touching any file.
	Dry bool

	// Stats prints a summary after processing.
	Stats bool

	// PreserveTimestamps copies the input modification time to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// LogLevel is the hclog level for diagnostics.
	LogLevel string `mapstructure:"log-level" validate:"oneof=trace debug info warn error off" label:"--log-level"`

	// Key selects the cipher key.
	Key Key `mapstructure:",squash"`

	// Suffixes name the produced files.
	Suffixes Suffixes `mapstructure:",squash"`

	// Filter narrows the files found while walking directories.
	Filter Filter `mapstructure:",squash"`

	// Verify refuses to write ciphertext that does not decrypt back to its input.
	Verify bool

	// Message, when set, is transformed and printed instead of processing files. "-" reads stdin.
	Message string

	// Generate configures the generate command.
	Generate Generate `mapstructure:",squash"`

	// Command is the subcommand being run.
	Command string `mapstructure:"-"`

	// Decrypt is true when running the decrypt command.
	Decrypt bool `mapstructure:"-"`

	// Files holds the positional arguments.
	Files []string `mapstructure:"-"`
}

// Key is the cipher key, given inline or through a file.
type Key struct {
	String   string `mapstructure:"key"         validate:"exclusive=File" label:"--key"`
	File     string `mapstructure:"key-file"    label:"--key-file"`
	Required bool   `mapstructure:"require-key"`
}

// Suffixes are appended to produced files.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" label:"--encrypt-ext"`
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Filter holds include/exclude patterns, inline or from JSONC files.
type Filter struct {
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from"`
}

// Generate configures key generation.
type Generate struct {
	Length           int  `validate:"gte=0" label:"--length"`
	Count            int  `validate:"gte=0" label:"--count"`
	InsecureFallback bool `mapstructure:"insecure-fallback"`

	Options keygen.Options `mapstructure:",squash"`
}

// Validate checks the configuration against its struct tags and the key requirements.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", describe(err))
	}

	if c.Command == CommandGenerate {
		return nil
	}

	if c.Suffixes.Encrypt == "" {
		return errors.New("validating configuration: --encrypt-ext must not be empty")
	}

	if c.Key.Required && c.Key.String == "" && c.Key.File == "" {
		return ErrMissingKey
	}

	return nil
}

// Resolve returns the key, reading it from the key file when one is configured.
// A single trailing line ending is stripped from file contents.
func (k Key) Resolve() (string, error) {
	if k.File == "" {
		return k.String, nil
	}

	data, err := os.ReadFile(k.File)
	if err != nil {
		return "", fmt.Errorf("reading key file: %w", err)
	}

	key := strings.TrimSuffix(string(data), "\n")
	key = strings.TrimSuffix(key, "\r")

	if key == "" && k.Required {
		return "", fmt.Errorf("key file %q: %w", k.File, ErrMissingKey)
	}

	return key, nil
}
