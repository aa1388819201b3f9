package pcm

// s24 samples are stored as three packed little-endian bytes: on
// little-endian hosts the byte order matches storage directly; the
// accessors below are written byte-by-byte so they are correct on
// big-endian hosts too (no host-endianness branch needed).

// loadS24 reads one little-endian packed 24-bit sample at b[0:3] and
// sign-extends it to int32.
func loadS24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign-extend bit 23 into bits 24-31.
	v = (v << 8) >> 8

	return v
}

// storeS24 writes the low 24 bits of v into b[0:3], little-endian.
func storeS24(b []byte, v int32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// ToS32FromS24 sign-extends every packed 24-bit sample in in (length
// 3*n) into out[n]int32, without scaling.
func ToS32FromS24(in []byte, out []int32) error {
	n := len(out)
	if len(in) != 3*n {
		return ErrLengthMismatch
	}

	for i := 0; i < n; i++ {
		out[i] = loadS24(in[3*i : 3*i+3])
	}

	return nil
}

// FromS32ToS24 packs n int32 samples into 3*n little-endian bytes,
// truncating to the low 24 bits (no clamping: callers that need
// saturation should clamp to [S24Min, S24Max] first).
func FromS32ToS24(in []int32, out []byte) error {
	n := len(in)
	if len(out) != 3*n {
		return ErrLengthMismatch
	}

	for i := 0; i < n; i++ {
		storeS24(out[3*i:3*i+3], in[i])
	}

	return nil
}

// FromS24ToU8 extracts the high byte of each sign-extended 24-bit
// sample (an arithmetic right shift by 16), with no rounding and no
// dither.
func FromS24ToU8(in []byte, out []uint8) error {
	n := len(out)
	if len(in) != 3*n {
		return ErrLengthMismatch
	}

	for i := 0; i < n; i++ {
		s := loadS24(in[3*i : 3*i+3])
		out[i] = uint8(int8(s >> 16))
		out[i] += 128 // bias to unsigned, matching the u8 midpoint-offset form
	}

	return nil
}

// FromS24ToS16 extracts the high two bytes of each sign-extended
// 24-bit sample (an arithmetic right shift by 8), with no rounding and
// no dither.
func FromS24ToS16(in []byte, out []int16) error {
	n := len(out)
	if len(in) != 3*n {
		return ErrLengthMismatch
	}

	for i := 0; i < n; i++ {
		s := loadS24(in[3*i : 3*i+3])
		out[i] = int16(s >> 8)
	}

	return nil
}
