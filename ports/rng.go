package ports

import "math/rand"

// RNG provides seeded random number generation so winner selection is
// reproducible under test. Stream returns an independent generator for a
// named operation; the same name and seed always yield the same stream.
type RNG interface {
	Stream(name string, seed int64) *rand.Rand
}
