package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ClampInt limits x to [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloorDiv floors a float coordinate to its cell index. Unlike int(x) it
// rounds toward negative infinity, so -0.5 maps to cell -1.
func FloorDiv(x float64) int {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return i
}
