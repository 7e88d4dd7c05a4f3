package game2048

import (
	"math/rand"
	"time"
)

// Source supplies uniform random integers. Intn returns a value in
// [0, n-1] inclusive and is only called with n > 0. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded math/rand source.
// A zero seed means seed from the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
