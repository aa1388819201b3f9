package simd

import "github.com/cwbudde/algo-dspcore/internal/cpu"

// laneWidth returns the chunk size the portable kernels use for F.
func laneWidth[F Float]() int {
	var zero F

	switch any(zero).(type) {
	case float32:
		return cpu.LaneWidthF32()
	case float64:
		return cpu.LaneWidthF64()
	default:
		return 1
	}
}

// ScaleBlock computes dst[i] = src[i] * scale.
func ScaleBlock[F Float](dst, src []F, scale F) {
	n := len(dst)
	lanes := laneWidth[F]()

	i := 0
	for ; i+lanes <= n; i += lanes {
		for l := range lanes {
			dst[i+l] = src[i+l] * scale
		}
	}

	for ; i < n; i++ {
		dst[i] = src[i] * scale
	}
}

// MulBlock computes dst[i] = a[i] * b[i].
func MulBlock[F Float](dst, a, b []F) {
	n := len(dst)
	lanes := laneWidth[F]()

	i := 0
	for ; i+lanes <= n; i += lanes {
		for l := range lanes {
			dst[i+l] = a[i+l] * b[i+l]
		}
	}

	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

