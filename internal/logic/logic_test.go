package logic

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/kdsm/internal/config"
	"github.com/idelchi/kdsm/internal/encryption"
	"github.com/idelchi/kdsm/internal/filter"
	"github.com/idelchi/kdsm/internal/kdsm"
	"github.com/idelchi/kdsm/internal/keygen"
)

func testConfig(files ...string) *config.Config {
	return &config.Config{
		Parallel: 1,
		Quiet:    true,
		Verify:   true,
		LogLevel: "off",
		Key:      config.Key{String: "test", Required: true},
		Suffixes: config.Suffixes{Encrypt: ".kdsm"},
		Files:    files,
	}
}

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestResolveFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "sub", "b.txt"))
	touch(t, filepath.Join(dir, "sub", "b.txt.kdsm"))
	touch(t, filepath.Join(dir, ".tmp-123"))

	t.Run("encrypt skips encrypted files", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(dir, filepath.Join(dir, "a.txt"))

		files, scanned, err := resolveFiles(cfg)
		require.NoError(t, err)

		sort.Strings(files)
		assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub", "b.txt")}, files)
		assert.Equal(t, 5, scanned)
	})

	t.Run("decrypt keeps encrypted files", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(dir)
		cfg.Decrypt = true

		files, _, err := resolveFiles(cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "sub", "b.txt.kdsm")}, files)
	})

	t.Run("patterns narrow the walk", func(t *testing.T) {
		t.Parallel()

		patterns := filepath.Join(t.TempDir(), "exclude.jsonc")
		require.NoError(t, os.WriteFile(patterns, []byte("[\n  // nested files\n  \"sub/*\",\n]"), 0o600))

		cfg := testConfig(dir)
		cfg.Filter = config.Filter{Include: []string{"*.txt"}, ExcludeFrom: patterns}

		files, scanned, err := resolveFiles(cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)
		assert.Equal(t, 4, scanned)
	})

	t.Run("missing pattern file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(dir)
		cfg.Filter.IncludeFrom = filepath.Join(dir, "nope.jsonc")

		_, _, err := resolveFiles(cfg)
		require.ErrorContains(t, err, "reading patterns file")
	})

	t.Run("nothing selected", func(t *testing.T) {
		t.Parallel()

		empty := t.TempDir()

		_, _, err := resolveFiles(testConfig(empty))
		require.ErrorIs(t, err, filter.ErrNoFiles)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveFiles(testConfig(filepath.Join(dir, "nope")))
		require.Error(t, err)
	})
}

func TestRunMessage(t *testing.T) {
	t.Parallel()

	engine := kdsm.New(kdsm.WithKeyPolicy(kdsm.RequireKey))

	t.Run("flag", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Message = "Hello"

		var out bytes.Buffer

		proc := encryption.NewProcessor(cfg, engine, "test", hclog.NewNullLogger())
		require.NoError(t, runMessage(cfg, proc, strings.NewReader(""), &out))
		assert.Equal(t, "`XGS%\n", out.String())
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Message = "-"
		cfg.Decrypt = true

		var out bytes.Buffer

		proc := encryption.NewProcessor(cfg, engine, "test", hclog.NewNullLogger())
		require.NoError(t, runMessage(cfg, proc, strings.NewReader("`XGS%\n"), &out))
		assert.Equal(t, "Hello\n", out.String())
	})

	t.Run("ciphertext ending in a line feed survives a pipe", func(t *testing.T) {
		t.Parallel()

		// Under "b" the leading U+000B encrypts to a line feed, which reversal moves to the end.
		const message = "\x0bhi"

		encCfg := testConfig()
		encCfg.Message = message

		var encrypted bytes.Buffer

		proc := encryption.NewProcessor(encCfg, engine, "b", hclog.NewNullLogger())
		require.NoError(t, runMessage(encCfg, proc, strings.NewReader(""), &encrypted))
		require.Equal(t, "~s\n\n", encrypted.String())

		decCfg := testConfig()
		decCfg.Message = "-"
		decCfg.Decrypt = true

		var decrypted bytes.Buffer

		proc = encryption.NewProcessor(decCfg, engine, "b", hclog.NewNullLogger())
		require.NoError(t, runMessage(decCfg, proc, &encrypted, &decrypted))
		assert.Equal(t, message+"\n", decrypted.String())
	})
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Command = config.CommandGenerate
	cfg.Generate = config.Generate{Length: 12, Count: 3, Options: keygen.DefaultOptions()}

	var out bytes.Buffer

	require.NoError(t, generate(cfg, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	for _, line := range lines {
		assert.Len(t, line, 12)
	}
}

func TestShowMasksKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Key.String = "super secret"

	var out bytes.Buffer

	require.NoError(t, show(cfg, &out))
	assert.NotContains(t, out.String(), "super secret")
	assert.Contains(t, out.String(), "********")
	assert.Equal(t, "super secret", cfg.Key.String)
}
