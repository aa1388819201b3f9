package cpu

// LaneWidthF32 returns the number of float32 lanes the portable vectorized
// kernels in internal/simd should process per chunk on this CPU: 8 under
// AVX2, 4 under SSE2/NEON, 1 (scalar) otherwise.
func LaneWidthF32() int {
	f := DetectFeatures()

	switch {
	case f.HasAVX2:
		return 8
	case f.HasSSE2, f.HasNEON:
		return 4
	default:
		return 1
	}
}

// LaneWidthF64 returns the number of float64 lanes: 4 under AVX2, 2 under
// SSE2/NEON, 1 (scalar) otherwise.
func LaneWidthF64() int {
	f := DetectFeatures()

	switch {
	case f.HasAVX2:
		return 4
	case f.HasSSE2, f.HasNEON:
		return 2
	default:
		return 1
	}
}
