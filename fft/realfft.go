package fft

// RealScratch holds the caller-owned scratch buffers ForwardRealScratch
// and InverseRealScratch read and write, each sized N/2 for the Engine
// that built it. Allocate one per Engine (or one per Convolver, since an
// Engine may be shared across goroutines) and reuse it across every
// call to keep the real-FFT hot path allocation-free.
type RealScratch[F Float] struct {
	packRe, packIm []F
	zRe, zIm       []F
}

// NewRealScratch allocates a RealScratch sized for this Engine. Requires
// order >= 2, the same requirement ForwardReal/InverseReal have.
func (e *Engine[F]) NewRealScratch() *RealScratch[F] {
	half := e.n / 2
	return &RealScratch[F]{
		packRe: make([]F, half),
		packIm: make([]F, half),
		zRe:    make([]F, half),
		zIm:    make([]F, half),
	}
}

func (s *RealScratch[F]) checkLen(half int) error {
	if len(s.packRe) != half || len(s.packIm) != half || len(s.zRe) != half || len(s.zIm) != half {
		return ErrLengthMismatch
	}

	return nil
}

// ForwardReal computes the N-point real DFT of in (length N), packed
// with DC in outRe[0], Nyquist in outIm[0], and bins k in [1, N/2)
// split across outRe[k]/outIm[k]. outRe and outIm must have length
// N/2. Requires order >= 2.
//
// This is the convenience form: it allocates its own scratch on every
// call. Hot-path callers should instead hold a RealScratch and call
// ForwardRealScratch.
func (e *Engine[F]) ForwardReal(in, outRe, outIm []F) error {
	return e.ForwardRealScratch(in, outRe, outIm, e.NewRealScratch())
}

// ForwardRealScratch is ForwardReal using caller-owned scratch instead
// of allocating it, so it performs no allocation of its own.
func (e *Engine[F]) ForwardRealScratch(in, outRe, outIm []F, s *RealScratch[F]) error {
	if err := e.checkLen("in", in); err != nil {
		return err
	}

	half := e.n / 2
	if len(outRe) != half || len(outIm) != half {
		return ErrLengthMismatch
	}

	if err := s.checkLen(half); err != nil {
		return err
	}

	for i := 0; i < half; i++ {
		s.packRe[i] = in[2*i]
		s.packIm[i] = in[2*i+1]
	}

	if err := e.half.Forward(s.packRe, s.packIm, s.zRe, s.zIm); err != nil {
		return err
	}

	e.reconstructReal(s.zRe, s.zIm, outRe, outIm)

	return nil
}

// reconstructReal performs the Z -> X reconstruction that recovers the
// N-point real spectrum from the N/2-point complex FFT of the packed
// input, turning zRe/zIm (length N/2) into outRe/outIm (length N/2).
func (e *Engine[F]) reconstructReal(zRe, zIm, outRe, outIm []F) {
	half := e.n / 2

	outRe[0] = zRe[0] + zIm[0]
	outIm[0] = zRe[0] - zIm[0]

	for k := 1; k < half; k++ {
		j := half - k

		// A = 0.5*(Z_k + conj(Z_j)), conj(Z_j) = (zRe[j], -zIm[j])
		aRe := F(0.5) * (zRe[k] + zRe[j])
		aIm := F(0.5) * (zIm[k] - zIm[j])

		// diff = Z_k - conj(Z_j)
		diffRe := zRe[k] - zRe[j]
		diffIm := zIm[k] + zIm[j]

		cos, sin := e.halfRealPostTwiddle(k)

		// B = 0.5*diff*(cos - i*sin)
		bRe := F(0.5) * (diffRe*cos + diffIm*sin)
		bIm := F(0.5) * (diffIm*cos - diffRe*sin)

		// X_k = A - i*B
		outRe[k] = aRe + bIm
		outIm[k] = aIm - bRe
	}
}

// halfRealPostTwiddle exposes realPostTwiddle with N taken to be this
// engine's full transform length (the post-twiddle table is sized for
// the N-point real FFT built from an N/2-point complex FFT, matching
// this Engine's own order).
func (e *Engine[F]) halfRealPostTwiddle(k int) (cos, sin F) {
	return e.realPostTwiddle(k)
}

// InverseReal is the adjoint of ForwardReal: given the packed real
// spectrum inRe/inIm (length N/2), reconstruct the N real time-domain
// samples into out (length N). No 1/N scaling is applied, matching the
// complex inverse transform's convention.
//
// This is the convenience form: it allocates its own scratch on every
// call. Hot-path callers should instead hold a RealScratch and call
// InverseRealScratch.
func (e *Engine[F]) InverseReal(inRe, inIm, out []F) error {
	return e.InverseRealScratch(inRe, inIm, out, e.NewRealScratch())
}

// InverseRealScratch is InverseReal using caller-owned scratch instead
// of allocating it, so it performs no allocation of its own.
func (e *Engine[F]) InverseRealScratch(inRe, inIm, out []F, s *RealScratch[F]) error {
	half := e.n / 2
	if len(inRe) != half || len(inIm) != half {
		return ErrLengthMismatch
	}

	if err := e.checkLen("out", out); err != nil {
		return err
	}

	if err := s.checkLen(half); err != nil {
		return err
	}

	e.predistributeReal(inRe, inIm, s.zRe, s.zIm)

	if err := e.half.Inverse(s.zRe, s.zIm, s.packRe, s.packIm); err != nil {
		return err
	}

	for i := 0; i < half; i++ {
		out[2*i] = s.packRe[i]
		out[2*i+1] = s.packIm[i]
	}

	return nil
}

// InverseRealClobberInput behaves like InverseReal but may overwrite
// inRe/inIm to avoid a scratch allocation.
//
// This is still the convenience form: it allocates the zRe/zIm scratch
// predistributeReal needs. Hot-path callers should instead hold a
// RealScratch and call InverseRealScratch.
func (e *Engine[F]) InverseRealClobberInput(inRe, inIm, out []F) error {
	half := e.n / 2
	if len(inRe) != half || len(inIm) != half {
		return ErrLengthMismatch
	}

	if err := e.checkLen("out", out); err != nil {
		return err
	}

	s := e.NewRealScratch()
	e.predistributeReal(inRe, inIm, s.zRe, s.zIm)

	if err := e.half.Inverse(s.zRe, s.zIm, inRe, inIm); err != nil {
		return err
	}

	for i := 0; i < half; i++ {
		out[2*i] = inRe[i]
		out[2*i+1] = inIm[i]
	}

	return nil
}

// predistributeReal is the pre-twiddle adjoint of reconstructReal: it
// turns the packed real spectrum inRe/inIm back into twice the
// half-size complex spectrum Z that the half engine's Inverse expects.
// The factor 2 makes InverseReal(ForwardReal(x)) = N*x, the same scale
// as the complex round trip.
func (e *Engine[F]) predistributeReal(inRe, inIm, zRe, zIm []F) {
	half := e.n / 2

	zRe[0] = inRe[0] + inIm[0]
	zIm[0] = inRe[0] - inIm[0]

	for k := 1; k < half; k++ {
		j := half - k

		cos, sin := e.halfRealPostTwiddle(k)

		// 2*A_k = X_k + conj(X_j), 2*B_k = i*(X_k - conj(X_j));
		// solved backward from the forward reconstruction's A/B split.
		aRe := inRe[k] + inRe[j]
		aIm := inIm[k] - inIm[j]

		bRe := -(inIm[k] + inIm[j])
		bIm := inRe[k] - inRe[j]

		diffRe := bRe*cos - bIm*sin
		diffIm := bRe*sin + bIm*cos

		zRe[k] = aRe + diffRe
		zIm[k] = aIm + diffIm
	}
}
