package keygen_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/kdsm/internal/keygen"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)

	return len(p), nil
}

func hasAny(s, chars string) bool {
	return strings.ContainsAny(s, chars)
}

func TestGenerateLengthAndAlphabet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    keygen.Options
		allowed string
	}{
		{
			name:    "defaults",
			opts:    keygen.DefaultOptions(),
			allowed: keygen.Lowercase + keygen.Uppercase + keygen.Numbers + keygen.Special,
		},
		{
			name:    "lowercase only",
			opts:    keygen.Options{Lowercase: true},
			allowed: keygen.Lowercase,
		},
		{
			name:    "numbers only",
			opts:    keygen.Options{Numbers: true},
			allowed: keygen.Numbers,
		},
		{
			name:    "nothing enabled falls back to lowercase",
			opts:    keygen.Options{},
			allowed: keygen.Lowercase,
		},
		{
			name:    "exclude similar",
			opts:    keygen.Options{Lowercase: true, Uppercase: true, Numbers: true, ExcludeSimilar: true},
			allowed: "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789",
		},
	}

	gen := keygen.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for range 200 {
				key, err := gen.Generate(32, tt.opts)
				require.NoError(t, err)
				assert.Len(t, key, 32)

				for _, r := range key {
					require.Contains(t, tt.allowed, string(r))
				}
			}
		})
	}
}

func TestGenerateClassCoverage(t *testing.T) {
	t.Parallel()

	gen := keygen.New()

	for trial := range 10_000 {
		length := 8 + trial%9

		key, err := gen.Generate(length, keygen.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, key, length)

		require.True(t, hasAny(key, keygen.Lowercase), key)
		require.True(t, hasAny(key, keygen.Uppercase), key)
		require.True(t, hasAny(key, keygen.Numbers), key)
		require.True(t, hasAny(key, keygen.Special), key)
	}
}

func TestGenerateRepairsDegenerateDraws(t *testing.T) {
	t.Parallel()

	// An all-zero reader always draws the first alphabet character.
	gen := keygen.New(keygen.WithReader(zeroReader{}))

	for _, length := range []int{4, 5, 8, 64} {
		key, err := gen.Generate(length, keygen.DefaultOptions())
		require.NoError(t, err)
		require.Len(t, key, length)

		assert.True(t, hasAny(key, keygen.Lowercase), key)
		assert.True(t, hasAny(key, keygen.Uppercase), key)
		assert.True(t, hasAny(key, keygen.Numbers), key)
		assert.True(t, hasAny(key, keygen.Special), key)
	}

	opts := keygen.DefaultOptions()
	opts.ExcludeSimilar = true

	key, err := gen.Generate(6, opts)
	require.NoError(t, err)
	assert.NotContains(t, key, "0")
	assert.NotContains(t, key, "1")
	assert.True(t, hasAny(key, "23456789"), key)
}

func TestGenerateSkipsRepairWhenShort(t *testing.T) {
	t.Parallel()

	gen := keygen.New(keygen.WithReader(zeroReader{}))

	key, err := gen.Generate(3, keygen.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "aaa", key)
}

func TestGenerateCustomWord(t *testing.T) {
	t.Parallel()

	gen := keygen.New()

	t.Run("prefix preserved", func(t *testing.T) {
		t.Parallel()

		opts := keygen.DefaultOptions()
		opts.CustomWord = "cat"

		for length := 3; length < 40; length++ {
			key, err := gen.Generate(length, opts)
			require.NoError(t, err)
			assert.Equal(t, length, utf8.RuneCountInString(key))
			assert.True(t, strings.EqualFold(key[:3], "cat"), key)
		}
	})

	tests := []struct {
		name string
		opts keygen.Options
		want string
	}{
		{name: "uppercase only", opts: keygen.Options{Uppercase: true, CustomWord: "Cat-9"}, want: "CAT-9"},
		{name: "lowercase only", opts: keygen.Options{Lowercase: true, CustomWord: "CaT-9"}, want: "cat-9"},
		{name: "no letter classes", opts: keygen.Options{Numbers: true, CustomWord: "CaT-9"}, want: "CaT-9"},
		{name: "unicode letters", opts: keygen.Options{Uppercase: true, CustomWord: "čaj"}, want: "ČAJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, err := gen.Generate(utf8.RuneCountInString(tt.want), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}

	t.Run("longer than length", func(t *testing.T) {
		t.Parallel()

		key, err := gen.Generate(2, keygen.Options{Lowercase: true, CustomWord: "elephant"})
		require.NoError(t, err)
		assert.Equal(t, "elephant", key)
	})

	t.Run("non-positive length", func(t *testing.T) {
		t.Parallel()

		key, err := gen.Generate(0, keygen.DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, key)

		key, err = gen.Generate(-5, keygen.Options{Lowercase: true, CustomWord: "cat"})
		require.NoError(t, err)
		assert.Equal(t, "cat", key)
	})
}

func TestGenerateEntropyFailure(t *testing.T) {
	t.Parallel()

	t.Run("no fallback", func(t *testing.T) {
		t.Parallel()

		gen := keygen.New(keygen.WithReader(failingReader{}))

		_, err := gen.Generate(16, keygen.DefaultOptions())
		require.ErrorIs(t, err, keygen.ErrEntropyUnavailable)
	})

	t.Run("fallback warns once", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Warn})
		gen := keygen.New(
			keygen.WithReader(failingReader{}),
			keygen.WithInsecureFallback(true),
			keygen.WithLogger(logger),
		)

		for range 3 {
			key, err := gen.Generate(16, keygen.DefaultOptions())
			require.NoError(t, err)
			assert.Len(t, key, 16)
		}

		assert.Equal(t, 1, strings.Count(buf.String(), "falling back"))
	})
}
