package seed

import (
	"time"
)

// Modulus bounds every derived seed to [0, Modulus).
const Modulus = 10000

// Derive computes the seed for key.
// An empty key yields the current Unix time in milliseconds modulo Modulus, as reported by now.
// The position-weighted sum is reduced at every step, so arbitrarily long keys cannot overflow.
func Derive(key string, now func() time.Time) int {
	if key == "" {
		return int(now().UnixMilli() % Modulus)
	}

	var (
		sum      uint64
		position uint64
	)

	for _, r := range key {
		position++

		weight := position % Modulus
		sum = (sum + (uint64(r)%Modulus)*weight) % Modulus
	}

	return int(sum)
}
