package logic

import (
	"fmt"
	"strings"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/filter"
)

// resolveFiles expands positional args into the files to process.
// Explicit files are taken as given. Directories are walked through the configured
// include/exclude patterns, and decryption keeps only files carrying the encrypted
// suffix while encryption skips them.
// Returns the selected files and the number of candidates scanned.
func resolveFiles(cfg *config.Config) (files []string, scanned int, err error) {
	includes, err := filter.Collect(cfg.Filter.Include, cfg.Filter.IncludeFrom)
	if err != nil {
		return nil, 0, err
	}

	excludes, err := filter.Collect(cfg.Filter.Exclude, cfg.Filter.ExcludeFrom)
	if err != nil {
		return nil, 0, err
	}

	flt, err := filter.New(includes, excludes, filter.WithRule(func(name string) bool {
		return selected(name, cfg)
	}))
	if err != nil {
		return nil, 0, fmt.Errorf("building filter: %w", err)
	}

	return flt.Resolve(cfg.Files)
}

// selected reports whether a file found while walking belongs to the current command.
func selected(name string, cfg *config.Config) bool {
	if strings.HasPrefix(name, ".tmp-") {
		return false
	}

	encrypted := strings.HasSuffix(name, cfg.Suffixes.Encrypt)

	return encrypted == cfg.Decrypt
}
