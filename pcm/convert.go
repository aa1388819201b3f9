package pcm

import (
	"math"

	"github.com/cwbudde/algo-dspcore/internal/core"
	"github.com/cwbudde/algo-dspcore/internal/simd"
)

// ToFloat32FromU8 converts u8 PCM (midpoint-offset form: stored value
// minus 128) to normalized float32, scaling by 1/2^7.
func ToFloat32FromU8(in []uint8, out []float32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	const scale = float32(1) / 128

	for i, v := range in {
		out[i] = (float32(v) - 128) * scale
	}

	return nil
}

// ToFloat32FromS16 converts s16 PCM to normalized float32, scaling by
// 1/2^15.
func ToFloat32FromS16(in []int16, out []float32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	const scale = float32(1) / 32768

	for i, v := range in {
		out[i] = float32(v)
	}

	simd.ScaleBlock(out, out, scale)

	return nil
}

// ToFloat32FromS24 converts packed little-endian 24-bit PCM (length
// 3*len(out)) to normalized float32, scaling by 1/2^23 after
// sign-extending each sample to 32 bits.
func ToFloat32FromS24(in []byte, out []float32) error {
	n := len(out)
	if len(in) != 3*n {
		return ErrLengthMismatch
	}

	const scale = float32(1) / 8388608

	for i := 0; i < n; i++ {
		out[i] = float32(loadS24(in[3*i:3*i+3])) * scale
	}

	return nil
}

// ToFloat32FromS32 converts s32 PCM to normalized float32, scaling by
// 1/2^31.
func ToFloat32FromS32(in []int32, out []float32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	const scale = float32(1) / 2147483648

	for i, v := range in {
		out[i] = float32(v)
	}

	simd.ScaleBlock(out, out, scale)

	return nil
}

// ToFloat32FromS64 converts s64 PCM to normalized float32. The scaled
// value is computed in float64 and narrowed at the end, as s64's range
// loses precision if converted through float32 directly.
func ToFloat32FromS64(in []int64, out []float32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	const scale = float64(1) / 9223372036854775808

	for i, v := range in {
		out[i] = float32(float64(v) * scale)
	}

	return nil
}

// ToFloat32FromF64 narrows float64 samples to float32.
func ToFloat32FromF64(in []float64, out []float32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = float32(v)
	}

	return nil
}

// FromFloat32ToU8 converts normalized float32 to u8 PCM: multiply by
// 2^7, round-to-nearest-away-from-zero, clamp the signed value to
// [-128, 127], then bias by +128.
func FromFloat32ToU8(in []float32, out []uint8) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		signed := roundAndClampInt32(float64(v)*128, -128, 127)
		out[i] = uint8(signed + 128)
	}

	return nil
}

// FromFloat32ToS16 converts normalized float32 to s16 PCM.
func FromFloat32ToS16(in []float32, out []int16) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = int16(roundAndClampInt32(float64(v)*32768, S16Min, S16Max))
	}

	return nil
}

// FromFloat32ToS32 converts normalized float32 to s32 PCM. The positive
// clamp is S32Max = 2^31-128, not 2^31-1, because 2^31 is not exactly
// representable in float32.
func FromFloat32ToS32(in []float32, out []int32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = int32(roundAndClampInt64(float64(v)*2147483648, S32Min, S32Max))
	}

	return nil
}

// roundAndClampInt32 handles the NaN/Inf saturation policy shared by
// every from_float path: from_float(+-Inf) saturates to +-max, and
// from_float(NaN) maps to the documented sentinel of 0.
func roundAndClampInt32(scaled float64, lo, hi int32) int32 {
	return int32(roundAndClampInt64(scaled, int64(lo), int64(hi)))
}

func roundAndClampInt64(scaled float64, lo, hi int64) int64 {
	if math.IsNaN(scaled) {
		return 0
	}

	if math.IsInf(scaled, 1) {
		return hi
	}

	if math.IsInf(scaled, -1) {
		return lo
	}

	rounded := core.RoundAwayFromZero(scaled)

	return core.ClampInt(int64(rounded), lo, hi)
}

// ToS32FromU8 sign-extends u8 PCM (midpoint-offset form) to s32,
// without scaling.
func ToS32FromU8(in []uint8, out []int32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = int32(int8(int32(v) - 128))
	}

	return nil
}

// ToS32FromS16 sign-extends s16 PCM to s32, without scaling.
func ToS32FromS16(in []int16, out []int32) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = int32(v)
	}

	return nil
}

// U8ToS16 converts u8 PCM to s16 PCM as (u8 - 128) << 8.
func U8ToS16(in []uint8, out []int16) error {
	if len(in) != len(out) {
		return ErrLengthMismatch
	}

	for i, v := range in {
		out[i] = int16(int32(v)-128) << 8
	}

	return nil
}
