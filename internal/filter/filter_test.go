package filter_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/kdsm/internal/filter"
)

func tree(t *testing.T, names ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	return root
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))

	for _, file := range files {
		r, err := filepath.Rel(root, file)
		require.NoError(t, err)

		out = append(out, filepath.ToSlash(r))
	}

	sort.Strings(out)

	return out
}

func TestResolve(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt", "b.md", "docs/c.txt", "docs/draft/d.txt", "vendor/e.txt")

	tests := []struct {
		name     string
		includes []string
		excludes []string
		rule     func(string) bool
		want     []string
	}{
		{
			name: "everything",
			want: []string{"a.txt", "b.md", "docs/c.txt", "docs/draft/d.txt", "vendor/e.txt"},
		},
		{
			name:     "include crosses directories",
			includes: []string{"*.txt"},
			want:     []string{"a.txt", "docs/c.txt", "docs/draft/d.txt", "vendor/e.txt"},
		},
		{
			name:     "exclude wins",
			includes: []string{"*.txt"},
			excludes: []string{"./vendor/*", "docs/draft/*"},
			want:     []string{"a.txt", "docs/c.txt"},
		},
		{
			name:     "rule applies to the base name",
			excludes: []string{"vendor/*"},
			rule:     func(name string) bool { return !strings.HasPrefix(name, "a") && !strings.HasPrefix(name, "d") },
			want:     []string{"b.md", "docs/c.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opts []filter.Option
			if tt.rule != nil {
				opts = append(opts, filter.WithRule(tt.rule))
			}

			flt, err := filter.New(tt.includes, tt.excludes, opts...)
			require.NoError(t, err)

			files, scanned, err := flt.Resolve([]string{root})
			require.NoError(t, err)
			assert.Equal(t, 5, scanned)
			assert.Equal(t, tt.want, rel(t, root, files))
		})
	}
}

func TestResolveExplicitFilesBypassPatterns(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt", "b.md")

	flt, err := filter.New(nil, []string{"*"}, filter.WithRule(func(string) bool { return false }))
	require.NoError(t, err)

	explicit := filepath.Join(root, "b.md")

	files, scanned, err := flt.Resolve([]string{explicit, root, explicit})
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, files)
	assert.Equal(t, 4, scanned)
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	root := tree(t, "a.txt")

	flt, err := filter.New([]string{"*.md"}, nil)
	require.NoError(t, err)

	_, _, err = flt.Resolve([]string{root})
	require.ErrorIs(t, err, filter.ErrNoFiles)

	_, _, err = flt.Resolve([]string{filepath.Join(root, "missing")})
	require.Error(t, err)

	_, err = filter.New([]string{"[abc"}, nil)
	require.ErrorContains(t, err, "include patterns")
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := filepath.Join(dir, "exclude.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`[
  // build output
  "dist/*",
  /* fixtures */ "*.golden",
]`), 0o600))

	patterns, err := filter.LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist/*", "*.golden"}, patterns)

	collected, err := filter.Collect([]string{"vendor/*"}, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/*", "dist/*", "*.golden"}, collected)

	inline, err := filter.Collect([]string{"vendor/*"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/*"}, inline)

	bad := filepath.Join(dir, "bad.jsonc")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "a list"}`), 0o600))

	_, err = filter.LoadPatterns(bad)
	require.ErrorContains(t, err, "parsing patterns file")

	_, err = filter.LoadPatterns(filepath.Join(dir, "missing.jsonc"))
	require.ErrorContains(t, err, "reading patterns file")
}
