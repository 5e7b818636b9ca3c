package kdsm

import (
	"github.com/idelchi/kdsm/internal/seed"
)

// KeyPolicy decides how an engine treats empty keys.
type KeyPolicy int

const (
	// AllowEmptyKey derives a clock-based seed for empty keys.
	// Ciphertext produced this way cannot be decrypted by key alone.
	AllowEmptyKey KeyPolicy = iota
	// RequireKey rejects empty keys with ErrEmptyKey.
	RequireKey
)

// Engine encrypts and decrypts text with KDSM.
// It is safe for concurrent use.
type Engine struct {
	deriver *seed.Deriver
	policy  KeyPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithDeriver sets the seed deriver, and with it the seed cache.
func WithDeriver(deriver *seed.Deriver) Option {
	return func(e *Engine) {
		e.deriver = deriver
	}
}

// WithKeyPolicy sets how empty keys are handled.
func WithKeyPolicy(policy KeyPolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// New creates an Engine. Without options it owns a cached deriver and allows empty keys.
func New(opts ...Option) *Engine {
	engine := &Engine{}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.deriver == nil {
		engine.deriver = seed.NewDeriver()
	}

	return engine
}

// Seed returns the seed the engine uses for key.
func (e *Engine) Seed(key string) (int, error) {
	if key == "" && e.policy == RequireKey {
		return 0, ErrEmptyKey
	}

	return e.deriver.Seed(key), nil
}

// Encrypt transforms message under key.
func (e *Engine) Encrypt(message, key string) (string, error) {
	s, err := e.Seed(key)
	if err != nil {
		return "", err
	}

	return EncryptSeed(message, s), nil
}

// Decrypt reverses Encrypt. A wrong key is not detected and yields unrelated text.
func (e *Engine) Decrypt(text, key string) (string, error) {
	s, err := e.Seed(key)
	if err != nil {
		return "", err
	}

	return DecryptSeed(text, s), nil
}

// Reversible reports whether message decrypts back to itself under key.
// A few control and Latin characters XOR into the marker bands at some positions
// and cannot be told apart from markers afterwards.
func (e *Engine) Reversible(message, key string) (bool, error) {
	s, err := e.Seed(key)
	if err != nil {
		return false, err
	}

	return DecryptSeed(EncryptSeed(message, s), s) == message, nil
}

// Purge clears the engine's seed cache.
func (e *Engine) Purge() {
	e.deriver.Purge()
}

type shifter struct {
	base, step int
}

// newShifter reduces s into [0, seed.Modulus) first, so negative seeds behave like their residue.
func newShifter(s int) shifter {
	s = (s%seed.Modulus + seed.Modulus) % seed.Modulus

	return shifter{base: s % 97, step: s % 11}
}

func (s shifter) at(i int) int {
	return s.base + i*s.step
}

// EncryptSeed transforms message with an explicit seed.
// Seeds outside [0, 9999] are taken modulo seed.Modulus.
func EncryptSeed(message string, s int) string {
	runes := []rune(message)
	shift := newShifter(s)

	for i, r := range runes {
		runes[i] = encodeRune(r, shift.at(i))
	}

	scramble(runes)

	return string(runes)
}

// DecryptSeed reverses EncryptSeed for the same seed.
func DecryptSeed(text string, s int) string {
	runes := []rune(text)
	shift := newShifter(s)

	unscramble(runes)

	for i, r := range runes {
		runes[i] = decodeRune(r, shift.at(i))
	}

	return string(runes)
}

// defaultEngine backs the package-level helpers. It keeps no cache, so no state outlives a call.
//
//nolint:gochecknoglobals
var defaultEngine = New(WithDeriver(seed.NewDeriver(seed.WithoutCache())))

// Encrypt transforms message under key with an uncached engine that allows empty keys.
func Encrypt(message, key string) string {
	//nolint:errcheck // AllowEmptyKey never fails
	out, _ := defaultEngine.Encrypt(message, key)

	return out
}

// Decrypt reverses Encrypt with the shared engine.
func Decrypt(text, key string) string {
	//nolint:errcheck // AllowEmptyKey never fails
	out, _ := defaultEngine.Decrypt(text, key)

	return out
}
