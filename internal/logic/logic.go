// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/encryption"
	"github.com/idelchi/kdsm/internal/kdsm"
	"github.com/idelchi/kdsm/internal/logging"
)

// Run is the main logic of the encrypt and decrypt commands.
func Run(cfg *config.Config) error {
	if cfg.Show {
		return show(cfg, os.Stdout)
	}

	logger := logging.New("kdsm", cfg.LogLevel, os.Stderr)

	key, err := cfg.Key.Resolve()
	if err != nil {
		return err
	}

	if key == "" && !cfg.Key.Required {
		logger.Warn("no key given, using a clock-based seed; the output cannot be decrypted by key")
	}

	engine := newEngine(cfg)

	if cfg.Message != "" {
		return runMessage(cfg, encryption.NewProcessor(cfg, engine, key, logger), os.Stdin, os.Stdout)
	}

	scanned, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	proc := encryption.NewProcessor(cfg, engine, key, logger)

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

func newEngine(cfg *config.Config) *kdsm.Engine {
	policy := kdsm.AllowEmptyKey
	if cfg.Key.Required {
		policy = kdsm.RequireKey
	}

	return kdsm.New(kdsm.WithKeyPolicy(policy))
}

// runMessage transforms the --message value, or stdin when it is "-", and prints the result.
// Output is framed by one trailing newline, and exactly one is removed from stdin, so
// piping encrypt into decrypt keeps a ciphertext that itself ends in a line feed intact.
// Unframed stdin must end with an extra newline for the same reason.
func runMessage(cfg *config.Config, proc *encryption.Processor, stdin io.Reader, stdout io.Writer) error {
	message := cfg.Message

	if message == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		message = strings.TrimSuffix(string(data), "\n")
	}

	out, err := proc.Transform(message)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(stdout, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// preamble resolves files and handles dry run. Returns done=true if dry run was executed.
func preamble(cfg *config.Config) (int, time.Time, bool, error) {
	start := time.Now()

	files, scanned, err := resolveFiles(cfg)
	if err != nil {
		return 0, start, false, fmt.Errorf("resolving files: %w", err)
	}

	cfg.Files = files

	if cfg.Dry {
		return scanned, start, true, dryRun(cfg, scanned, start)
	}

	return scanned, start, false, nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(cfg *config.Config, scanned int, start time.Time) error {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, encryption.OutputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, len(cfg.Files), 0, totalSize, time.Since(start))
	}

	return nil
}

func printStats(scanned, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", scanned-processed-errored)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
