package fft

import "github.com/cwbudde/algo-vecmath"

// MagnitudeFromParts computes dst[k] = sqrt(re[k]^2 + im[k]^2) for a
// float64 spectrum already split into real/imaginary parts, as produced
// by Forward/ForwardReal. All three slices must have equal length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes dst[k] = re[k]^2 + im[k]^2 for a float64
// spectrum already split into real/imaginary parts.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
