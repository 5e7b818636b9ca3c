package logic

import (
	"fmt"
	"io"
	"os"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/keygen"
	"github.com/idelchi/kdsm/internal/logging"
)

// RunGenerate prints cfg.Generate.Count keys, one per line.
func RunGenerate(cfg *config.Config) error {
	if cfg.Show {
		return show(cfg, os.Stdout)
	}

	return generate(cfg, os.Stdout)
}

func generate(cfg *config.Config, out io.Writer) error {
	logger := logging.New("kdsm", cfg.LogLevel, os.Stderr)

	gen := keygen.New(
		keygen.WithInsecureFallback(cfg.Generate.InsecureFallback),
		keygen.WithLogger(logger),
	)

	for range max(1, cfg.Generate.Count) {
		key, err := gen.Generate(cfg.Generate.Length, cfg.Generate.Options)
		if err != nil {
			return fmt.Errorf("generating key: %w", err)
		}

		if _, err := fmt.Fprintln(out, key); err != nil {
			return fmt.Errorf("writing key: %w", err)
		}
	}

	return nil
}
