// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// Source describes an input file whose metadata carries over to its output.
type Source struct {
	Path string
	Info os.FileInfo
}

// Stat describes the file at path.
func Stat(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("getting file info for %q: %w", path, err)
	}

	return Source{Path: path, Info: info}, nil
}

// Executable reports whether any execute bit is set on the source.
func (s Source) Executable() bool {
	return s.Info.Mode()&executableBits != 0
}

// OutputMode is owner read/write, plus the execute bits when the source had any.
func (s Source) OutputMode() os.FileMode {
	perm := os.FileMode(ownerReadWrite)

	if s.Executable() {
		perm |= executableBits
	}

	return perm
}

// WriteAtomic writes data to a temporary file beside outPath and renames it into place.
// The temporary file is removed if any step fails.
func WriteAtomic(outPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmpFile.Name()

	defer func() {
		tmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

		if err != nil {
			os.Remove(tmpName) //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// FinalizeOutput optionally preserves timestamps and returns the output file size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}
