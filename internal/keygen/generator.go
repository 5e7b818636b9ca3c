package keygen

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
)

// minRepairLength is the shortest random portion the class repair is applied to.
const minRepairLength = 4

// Generator produces keys. It is safe for concurrent use as long as its reader is.
type Generator struct {
	src *source
}

// Option configures a Generator.
type Option func(*source)

// WithReader sets the entropy source. It defaults to crypto/rand.Reader.
func WithReader(reader io.Reader) Option {
	return func(s *source) {
		s.reader = reader
	}
}

// WithInsecureFallback allows falling back to math/rand when the entropy source fails.
// The fallback is announced once through the logger.
func WithInsecureFallback(allow bool) Option {
	return func(s *source) {
		s.fallback = allow
	}
}

// WithLogger sets the logger used to report the insecure fallback.
func WithLogger(logger hclog.Logger) Option {
	return func(s *source) {
		s.logger = logger
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	src := &source{
		reader: rand.Reader,
		logger: hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(src)
	}

	return &Generator{src: src}
}

// Generate returns a key of length characters.
//
// A custom word becomes a prefix with its letters re-cased according to the enabled
// letter classes; the rest is drawn from the alphabet. When the word is longer than
// length, the key is the word alone.
func (g *Generator) Generate(length int, opts Options) (string, error) {
	key, err := g.prefix(opts)
	if err != nil {
		return "", err
	}

	prefixLen := len(key)
	remaining := max(0, length-prefixLen)
	alphabet := opts.alphabet()

	for range remaining {
		r, err := g.src.pick(alphabet)
		if err != nil {
			return "", fmt.Errorf("drawing character: %w", err)
		}

		key = append(key, r)
	}

	if opts.strong() && remaining >= minRepairLength {
		if err := g.repair(key, prefixLen, opts.classes()); err != nil {
			return "", fmt.Errorf("ensuring character classes: %w", err)
		}
	}

	return string(key), nil
}

// prefix re-cases the custom word.
func (g *Generator) prefix(opts Options) ([]rune, error) {
	word := []rune(opts.CustomWord)

	for i, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}

		switch {
		case opts.Uppercase && opts.Lowercase:
			upper, err := g.src.intn(2)
			if err != nil {
				return nil, fmt.Errorf("re-casing custom word: %w", err)
			}

			if upper == 1 {
				word[i] = unicode.ToUpper(r)
			} else {
				word[i] = unicode.ToLower(r)
			}
		case opts.Uppercase:
			word[i] = unicode.ToUpper(r)
		case opts.Lowercase:
			word[i] = unicode.ToLower(r)
		}
	}

	return word, nil
}

// repair overwrites randomly chosen positions after from so every class in classes occurs.
// Positions are visited in a uniformly shuffled order, but a position holding the last
// occurrence of its class is passed over, so the choice is uniform only among the
// positions that can give up their character.
func (g *Generator) repair(key []rune, from int, classes []class) error {
	counts := make([]int, len(classes))

	for _, r := range key {
		if c := classIndex(classes, r); c >= 0 {
			counts[c]++
		}
	}

	positions := make([]int, 0, len(key)-from)
	for i := from; i < len(key); i++ {
		positions = append(positions, i)
	}

	shuffled := false
	cursor := 0

	for missing, count := range counts {
		if count > 0 {
			continue
		}

		if !shuffled {
			if err := g.src.shuffle(positions); err != nil {
				return err
			}

			shuffled = true
		}

		for ; cursor < len(positions); cursor++ {
			pos := positions[cursor]

			owner := classIndex(classes, key[pos])
			if owner >= 0 && counts[owner] < 2 {
				continue
			}

			r, err := g.src.pick([]rune(classes[missing].chars))
			if err != nil {
				return err
			}

			if owner >= 0 {
				counts[owner]--
			}

			key[pos] = r
			counts[missing]++
			cursor++

			break
		}
	}

	return nil
}

func classIndex(classes []class, r rune) int {
	for i, c := range classes {
		if strings.ContainsRune(c.chars, r) {
			return i
		}
	}

	return -1
}
