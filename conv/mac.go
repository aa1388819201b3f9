package conv

// macPartition accumulates acc += X * H, where X and H are one
// partition's worth (length N) of packed real-FFT spectrum: bin 0
// packs DC and Nyquist as two independent real scalars rather than one
// complex pair, so it is multiplied without the cross term.
func macPartition[F Float](accRe, accIm, xRe, xIm, hRe, hIm []F) {
	accRe[0] += xRe[0] * hRe[0]
	accIm[0] += xIm[0] * hIm[0]

	for k := 1; k < len(accRe); k++ {
		accRe[k] += xRe[k]*hRe[k] - xIm[k]*hIm[k]
		accIm[k] += xRe[k]*hIm[k] + xIm[k]*hRe[k]
	}
}

// macPartitionMixed accumulates acc += X * (gainA*A + gainB*B), the
// two-kernel crossfade multiply-accumulate used by ConvolveMix. The
// combined kernel is linear in A and B, so the same bin-0 special case
// applies to the blended real/imag values.
func macPartitionMixed[F Float](accRe, accIm, xRe, xIm []F, aRe, aIm []F, gainA F, bRe, bIm []F, gainB F) {
	hRe0 := gainA*aRe[0] + gainB*bRe[0]
	hIm0 := gainA*aIm[0] + gainB*bIm[0]

	accRe[0] += xRe[0] * hRe0
	accIm[0] += xIm[0] * hIm0

	for k := 1; k < len(accRe); k++ {
		hRe := gainA*aRe[k] + gainB*bRe[k]
		hIm := gainA*aIm[k] + gainB*bIm[k]

		accRe[k] += xRe[k]*hRe - xIm[k]*hIm
		accIm[k] += xRe[k]*hIm + xIm[k]*hRe
	}
}
