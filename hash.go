package driftgrid

// Coordinate hashing. Tiles derive their content and per-tile jitter from
// their virtual grid coordinate alone, so an unbounded grid needs no stored
// state: revisiting a coordinate always reproduces the same media index and
// the same seed values.

const (
	hashMulCol = 0x9e3779b97f4a7c15 // golden-ratio increment
	hashMulRow = 0xc2b2ae3d27d4eb4f
	hashMulMix = 0x165667b19e3779f9
)

// coordBits mixes a grid coordinate and a salt into 64 well-scrambled bits.
// Negative coordinates are fine; the int64 conversion keeps -1 and
// math.MaxUint64 from colliding across platforms.
func coordBits(col, row, salt int) uint64 {
	h := uint64(int64(col))*hashMulCol ^ uint64(int64(row))*hashMulRow
	h += uint64(int64(salt)+1) * hashMulMix
	h ^= h >> 33
	h *= hashMulRow
	h ^= h >> 29
	h *= hashMulMix
	h ^= h >> 32
	return h
}

// hashCoord maps a grid coordinate to a stable index in [0, modulus).
// Returns 0 when modulus is not positive.
func hashCoord(col, row, modulus int) int {
	if modulus <= 0 {
		return 0
	}
	return int(coordBits(col, row, 0) % uint64(modulus))
}

// seed01 maps a grid coordinate to a stable value in [0, 1). The salt keeps
// independent per-tile channels (e.g. jitter vs. delay) decorrelated.
func seed01(col, row, salt int) float64 {
	// Top 53 bits fill a float64 mantissa exactly.
	return float64(coordBits(col, row, salt)>>11) / (1 << 53)
}
