// Package filter selects the files a command processes.
// Explicit files are taken as given. Directories are walked and narrowed by include/exclude
// patterns with find -path semantics, matched against the path relative to the walked
// directory, plus an optional per-name rule.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/kdsm/pkg/pathmatch"
)

// ErrNoFiles is returned when the arguments select nothing to process.
var ErrNoFiles = errors.New("no files matched the provided paths")

// Filter decides which walked files are kept.
// Empty includes keep everything. Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
	rule     func(name string) bool
}

// Option configures a Filter.
type Option func(*Filter)

// WithRule adds a predicate on the base name that every walked file must pass.
func WithRule(rule func(name string) bool) Option {
	return func(f *Filter) {
		f.rule = rule
	}
}

// New compiles include/exclude patterns into a Filter.
func New(includes, excludes []string, opts ...Option) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(normalize(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(normalize(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	flt := &Filter{includes: inc, excludes: exc}

	for _, opt := range opts {
		opt(flt)
	}

	return flt, nil
}

// Match reports whether a walked file is kept. rel is the slash-separated path below the walked directory.
func (f *Filter) Match(rel string) bool {
	if f.rule != nil && !f.rule(pathBase(rel)) {
		return false
	}

	if f.includes.Len() > 0 && !f.includes.MatchAny(rel) {
		return false
	}

	return !f.excludes.MatchAny(rel)
}

// Resolve expands args into the files to process, without duplicates.
// Returns the kept files and the number of candidates scanned.
func (f *Filter) Resolve(args []string) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := f.walk(arg)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

func (f *Filter) walk(root string) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		total++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if f.Match(filepath.ToSlash(rel)) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}

// normalize strips a leading "./" so patterns line up with relative paths.
func normalize(patterns []string) []string {
	out := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		out = append(out, strings.TrimPrefix(pattern, "./"))
	}

	return out
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}

	return rel
}
