package conv

import "github.com/cwbudde/algo-dspcore/internal/core"

// Option configures a Convolver at construction time, following the
// project's functional-options convention.
type Option[F Float] func(*Convolver[F])

// WithDenormalFlushing sets every emitted output sample whose magnitude
// is below 1e-30 (the core.FlushDenormals threshold, which also covers
// the denormal range) to exact zero. Long decay tails (large
// reverberant kernels fed a near-silent input) can otherwise produce
// denormal output, which stalls the FPU on hosts that do not run with
// DAZ/FTZ enabled. The accumulator ring itself is not flushed.
func WithDenormalFlushing[F Float]() Option[F] {
	return func(c *Convolver[F]) {
		c.flushDenormals = true
	}
}

func flushDenormalBlock[F Float](buf []F) {
	if f64, ok := any(buf).([]float64); ok {
		for i, v := range f64 {
			f64[i] = core.FlushDenormals(v)
		}

		return
	}

	if f32, ok := any(buf).([]float32); ok {
		for i, v := range f32 {
			f32[i] = core.FlushDenormals32(v)
		}
	}
}
