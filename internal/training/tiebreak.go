package training

import "hash/fnv"

// Tiebreaker derives a deterministic pseudo-random value in [0, max) from a
// string key. The same key always yields the same value, so ties reshuffle
// only when the seed changes. Kept pluggable so alternate seed strategies
// can be substituted without touching the ranking logic.
type Tiebreaker func(key string, max float64) float64

// HashTiebreaker is the default Tiebreaker, based on a 32-bit FNV-1a hash.
func HashTiebreaker(key string, max float64) float64 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return float64(h.Sum32()%100000) / 100000 * max
}
