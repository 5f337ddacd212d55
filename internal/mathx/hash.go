package mathx

// Hash32 mixes a 32-bit input into a well-distributed 32-bit output
// (murmur-style finalizer). Stable across platforms and versions.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// HashIndex derives a per-item hash from a frame seed and an item index.
// The same (seed, i) pair always yields the same value.
func HashIndex(seed uint32, i int) uint32 {
	return Hash32(seed ^ uint32(i)*0x9e3779b1)
}

// Hash2 returns a stable hash for 2D integer coordinates plus seed.
func Hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return Hash32(h)
}

// Unit maps a hash onto [0,1).
func Unit(h uint32) float64 {
	return float64(h) / 4294967296.0
}

// Chance reports whether the hash-derived draw falls below p.
func Chance(h uint32, p float64) bool {
	return Unit(h) < p
}
