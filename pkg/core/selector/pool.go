package selector

import (
	"math"
	"math/rand/v2"
)

// Copies returns how many times an item of the given weight appears in a
// pool whose weights sum to total: floor(100 · weight / total).
func Copies(weight, total float64) int {
	if total <= 0 || weight <= 0 {
		return 0
	}
	return int(math.Floor(100 * weight / total))
}

// BuildPool replicates items according to their weights.
func BuildPool[T any](items []T, weight func(T) float64) []T {
	var total float64
	for _, it := range items {
		total += weight(it)
	}
	var pool []T
	for _, it := range items {
		for range Copies(weight(it), total) {
			pool = append(pool, it)
		}
	}
	return pool
}

// Sample returns a uniformly chosen element of pool, or the zero value and
// false when pool is empty.
func Sample[T any](rng *rand.Rand, pool []T) (T, bool) {
	if len(pool) == 0 {
		var zero T
		return zero, false
	}
	return pool[rng.IntN(len(pool))], true
}
