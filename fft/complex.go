package fft

import (
	"github.com/cwbudde/algo-dspcore/internal/simd"
	"github.com/cwbudde/algo-vecmath"
)

// Forward computes the N-point complex DFT of (inRe, inIm), writing the
// result into (outRe, outIm). All four buffers must have length N; in
// and out buffers must not alias.
//
// Stage 0 is fused with the bit-reversal permutation: it reads from
// natural-order input and scatters into bit-reversed storage directly
// (the unity butterfly, since stage 0's twiddle is always 1). Stages
// 1..M-1 then run as ordinary DIT passes over contiguous runs in the
// now bit-reversed buffer.
func (e *Engine[F]) Forward(inRe, inIm, outRe, outIm []F) error {
	if err := e.checkLen("inRe", inRe); err != nil {
		return err
	}

	if err := e.checkLen("inIm", inIm); err != nil {
		return err
	}

	if err := e.checkLen("outRe", outRe); err != nil {
		return err
	}

	if err := e.checkLen("outIm", outIm); err != nil {
		return err
	}

	e.stage0ScatterDIT(inRe, inIm, outRe, outIm)

	for s := 2; s <= e.order; s++ {
		e.ditStage(s, outRe, outIm)
	}

	return nil
}

// ForwardComplex is the Complex[F]-buffer convenience form of Forward.
// It allocates four N-length scratch buffers per call; callers on a
// hot path should use Forward directly with buffers they own instead.
func (e *Engine[F]) ForwardComplex(in, out []Complex[F]) error {
	if err := checkComplexLen(e.n, "in", in); err != nil {
		return err
	}

	if err := checkComplexLen(e.n, "out", out); err != nil {
		return err
	}

	inRe := make([]F, e.n)
	inIm := make([]F, e.n)

	for i, c := range in {
		inRe[i] = c.Re
		inIm[i] = c.Im
	}

	outRe := make([]F, e.n)
	outIm := make([]F, e.n)

	if err := e.Forward(inRe, inIm, outRe, outIm); err != nil {
		return err
	}

	for i := range out {
		out[i] = Complex[F]{Re: outRe[i], Im: outIm[i]}
	}

	return nil
}

func checkComplexLen[F Float](n int, name string, buf []Complex[F]) error {
	if len(buf) != n {
		return ErrLengthMismatch
	}

	return nil
}

// ForwardFirstHalfZero computes Forward for an input whose second half
// (indices [N/2, N)) is known to be zero. in must have length N/2; the
// missing half is written as zeros during the bit-reversal scatter, and
// every stage then runs over the full buffer.
func (e *Engine[F]) ForwardFirstHalfZero(inRe, inIm, outRe, outIm []F) error {
	half := e.n / 2
	if len(inRe) != half || len(inIm) != half {
		return ErrLengthMismatch
	}

	if err := e.checkLen("outRe", outRe); err != nil {
		return err
	}

	if err := e.checkLen("outIm", outIm); err != nil {
		return err
	}

	for n := 0; n < half; n++ {
		dst := e.bitRev.at(n)
		outRe[dst] = inRe[n]
		outIm[dst] = inIm[n]
	}

	for n := half; n < e.n; n++ {
		dst := e.bitRev.at(n)
		outRe[dst] = 0
		outIm[dst] = 0
	}

	e.ditStage(1, outRe, outIm)

	for s := 2; s <= e.order; s++ {
		e.ditStage(s, outRe, outIm)
	}

	return nil
}

// stage0ScatterDIT scatters natural-order input into bit-reversed
// storage and immediately applies stage 1's unity butterfly (stage
// s=1 has span 2, half 1, twiddle W_0 = 1 always, so it fuses cheaply
// with the scatter: each adjacent bit-reversed pair is exactly a
// stage-1 span).
func (e *Engine[F]) stage0ScatterDIT(inRe, inIm, outRe, outIm []F) {
	for n := 0; n < e.n; n++ {
		dst := e.bitRev.at(n)
		outRe[dst] = inRe[n]
		outIm[dst] = inIm[n]
	}

	e.ditStage(1, outRe, outIm)
}

// ditStage applies one decimation-in-time stage s over the full buffer,
// in contiguous runs of span = 2^s.
func (e *Engine[F]) ditStage(s int, re, im []F) {
	span := 1 << s
	half := span / 2

	if half == 1 {
		for base := 0; base < e.n; base += span {
			simd.ButterflyDITUnity(re[base:base+1], im[base:base+1], re[base+1:base+2], im[base+1:base+2])
		}

		return
	}

	twRe, twIm := e.twiddleRun(s)

	for base := 0; base < e.n; base += span {
		simd.ButterflyDIT(
			re[base:base+half], im[base:base+half],
			re[base+half:base+span], im[base+half:base+span],
			twRe, twIm,
		)
	}
}

// difStage applies one decimation-in-frequency stage s over the full
// buffer, in contiguous runs of span = 2^s.
func (e *Engine[F]) difStage(s int, re, im []F) {
	span := 1 << s
	half := span / 2

	if half == 1 {
		for base := 0; base < e.n; base += span {
			simd.ButterflyDIFUnity(re[base:base+1], im[base:base+1], re[base+1:base+2], im[base+1:base+2])
		}

		return
	}

	twRe, twIm := e.twiddleRun(s)

	for base := 0; base < e.n; base += span {
		simd.ButterflyDIF(
			re[base:base+half], im[base:base+half],
			re[base+half:base+span], im[base+half:base+span],
			twRe, twIm,
		)
	}
}

// ForwardInPlaceDIF runs M decimation-in-frequency stages in natural
// order, in place. No bit-reversal permutation is applied; the output
// is left in bit-reversed order.
func (e *Engine[F]) ForwardInPlaceDIF(re, im []F) error {
	if err := e.checkLen("re", re); err != nil {
		return err
	}

	if err := e.checkLen("im", im); err != nil {
		return err
	}

	for s := e.order; s >= 1; s-- {
		e.difStage(s, re, im)
	}

	return nil
}

// InverseInPlaceDIT runs M decimation-in-time stages in place on input
// assumed to already be in bit-reversed order, leaving the output in
// natural order. No 1/N scaling is applied.
func (e *Engine[F]) InverseInPlaceDIT(re, im []F) error {
	if err := e.checkLen("re", re); err != nil {
		return err
	}

	if err := e.checkLen("im", im); err != nil {
		return err
	}

	for s := 1; s <= e.order; s++ {
		e.ditConjStage(s, re, im)
	}

	return nil
}

// ditConjStage is ditStage with the twiddle conjugated (im negated),
// the butterfly used by the inverse transform.
func (e *Engine[F]) ditConjStage(s int, re, im []F) {
	span := 1 << s
	half := span / 2

	if half == 1 {
		for base := 0; base < e.n; base += span {
			simd.ButterflyDITUnity(re[base:base+1], im[base:base+1], re[base+1:base+2], im[base+1:base+2])
		}

		return
	}

	twRe, twIm := e.twiddleRun(s)

	for base := 0; base < e.n; base += span {
		conjButterflyDIT(
			re[base:base+half], im[base:base+half],
			re[base+half:base+span], im[base+half:base+span],
			twRe, twIm,
		)
	}
}

func conjButterflyDIT[F Float](aRe, aIm, bRe, bIm, twRe, twIm []F) {
	for k := range aRe {
		wRe := twRe[k]
		wIm := -twIm[k]

		tRe := wRe*bRe[k] - wIm*bIm[k]
		tIm := wRe*bIm[k] + wIm*bRe[k]

		newARe := aRe[k] + tRe
		newAIm := aIm[k] + tIm
		newBRe := aRe[k] - tRe
		newBIm := aIm[k] - tIm

		aRe[k], aIm[k] = newARe, newAIm
		bRe[k], bIm[k] = newBRe, newBIm
	}
}

// Inverse is the out-of-place convenience inverse transform, implemented
// via the imag/real swap trick: inverse(x) = swap(forward(swap(x))).
// No 1/N scaling is applied, matching InverseInPlaceDIT.
func (e *Engine[F]) Inverse(inRe, inIm, outRe, outIm []F) error {
	return e.Forward(inIm, inRe, outIm, outRe)
}

// ApplyWindow multiplies inout element-wise by coeffs, in place. Both
// slices must have length N. For F = float64 this dispatches to
// vecmath's SIMD-backed block multiply; other instantiations use the
// portable lane-chunked path.
func (e *Engine[F]) ApplyWindow(inout, coeffs []F) error {
	if err := e.checkLen("inout", inout); err != nil {
		return err
	}

	if len(coeffs) != e.n {
		return ErrLengthMismatch
	}

	if buf, ok := any(inout).([]float64); ok {
		c, _ := any(coeffs).([]float64)
		vecmath.MulBlockInPlace(buf, c)
		return nil
	}

	simd.MulBlock(inout, inout, coeffs)

	return nil
}

// BitReverseAndInterleave writes out[2n] = re[bitrev(n)] and
// out[2n+1] = im[bitrev(n)] for every n in [0, N), permuting through
// the bit-reversal table while interleaving. out must have length 2N.
func (e *Engine[F]) BitReverseAndInterleave(re, im, out []F) error {
	if err := e.checkLen("re", re); err != nil {
		return err
	}

	if err := e.checkLen("im", im); err != nil {
		return err
	}

	if len(out) != 2*e.n {
		return ErrLengthMismatch
	}

	for n := 0; n < e.n; n++ {
		src := e.bitRev.at(n)
		out[2*n] = re[src]
		out[2*n+1] = im[src]
	}

	return nil
}
