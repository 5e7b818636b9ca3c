package keygen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	mathrand "math/rand/v2"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// source draws uniform integers, preferring a secure reader.
type source struct {
	reader   io.Reader
	fallback bool
	logger   hclog.Logger
	warnOnce sync.Once
}

// intn returns a uniform integer in [0, n). n must be positive.
func (s *source) intn(n int) (int, error) {
	v, err := rand.Int(s.reader, big.NewInt(int64(n)))
	if err == nil {
		return int(v.Int64()), nil
	}

	if !s.fallback {
		return 0, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	s.warnOnce.Do(func() {
		s.logger.Warn("secure random source failed, falling back to math/rand", "error", err)
	})

	return mathrand.IntN(n), nil //nolint:gosec // explicit opt-in fallback
}

// pick returns a uniformly chosen rune of alphabet.
func (s *source) pick(alphabet []rune) (rune, error) {
	i, err := s.intn(len(alphabet))
	if err != nil {
		return 0, err
	}

	return alphabet[i], nil
}

// shuffle permutes values in place with Fisher-Yates.
func (s *source) shuffle(values []int) error {
	for i := len(values) - 1; i > 0; i-- {
		j, err := s.intn(i + 1)
		if err != nil {
			return err
		}

		values[i], values[j] = values[j], values[i]
	}

	return nil
}
