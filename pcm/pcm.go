// Package pcm converts packed integer PCM sample formats (u8, s16, s24,
// s32, s64) to and from normalized float32/float64, with optional
// triangular-PDF dither on bit-depth reduction and channel
// de-interleave/interleave helpers.
//
// Every conversion is bulk and straight-line: no streaming state, no
// allocation, and (other than the explicit dither seed) no hidden
// mutable state. Vectorized kernels live in internal/simd; this package
// supplies the per-sample scaling, rounding, saturation, and byte
// packing around them.
package pcm

import "errors"

// ErrLengthMismatch is returned when input/output buffer lengths
// disagree with the shapes a conversion requires.
var ErrLengthMismatch = errors.New("pcm: buffer length mismatch")

// Saturation limits for the signed integer formats this package
// converts to/from. S32Max is the s32 positive clamp used by
// FromFloat32ToS32: 2^31-128 rather than 2^31-1, because 2^31 is not
// exactly representable in float32; this is a documented, deliberate
// precision concession (see SPEC_FULL.md's Open Questions resolution).
const (
	U8Min  = 0
	U8Max  = 255
	S16Min = -32768
	S16Max = 32767
	S24Min = -(1 << 23)
	S24Max = (1 << 23) - 1
	S32Min = -(1 << 31)
	S32Max = (1 << 31) - 128
)
