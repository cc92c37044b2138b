package source

// FindAnchor returns the index of the first positive-going zero crossing in
// buf[:limit]: the first value >= 0 that follows a value < 0.
//
// The scan always starts at index 0. It returns 0 when limit <= 0 or when no
// crossing exists, so the caller still gets an (unanchored) window.
func FindAnchor(buf []float64, limit int) int {
	if limit > len(buf) {
		limit = len(buf)
	}
	if limit <= 0 {
		return 0
	}

	neg := -1
	for i := 0; i < limit; i++ {
		v := buf[i]
		if v < 0 {
			neg = i
			continue
		}
		if neg > -1 {
			return i
		}
	}
	return 0
}
