package simd

// ButterflyDIT computes, for each lane k in [0, half):
//
//	wRe,wIm = twiddle[k]
//	aRe,aIm = aRe[k], aIm[k]   (the "top" operand)
//	bRe,bIm = bRe[k], bIm[k]   (the "bottom" operand, pre-multiply)
//	t = W * b
//	aRe[k], aIm[k] = a + t
//	bRe[k], bIm[k] = a - t
//
// aRe/aIm and bRe/bIm are the two halves of one butterfly span; twRe/twIm
// hold `half` twiddle factors. All four data slices and the two twiddle
// slices must have length half.
func ButterflyDIT[F Float](aRe, aIm, bRe, bIm, twRe, twIm []F) {
	half := len(aRe)
	lanes := laneWidth[F]()

	i := 0
	for ; i+lanes <= half; i += lanes {
		for l := range lanes {
			ditOne(&aRe[i+l], &aIm[i+l], &bRe[i+l], &bIm[i+l], twRe[i+l], twIm[i+l])
		}
	}

	for ; i < half; i++ {
		ditOne(&aRe[i], &aIm[i], &bRe[i], &bIm[i], twRe[i], twIm[i])
	}
}

func ditOne[F Float](aRe, aIm, bRe, bIm *F, wRe, wIm F) {
	tRe := wRe*(*bRe) - wIm*(*bIm)
	tIm := wRe*(*bIm) + wIm*(*bRe)

	newARe := *aRe + tRe
	newAIm := *aIm + tIm
	newBRe := *aRe - tRe
	newBIm := *aIm - tIm

	*aRe, *aIm = newARe, newAIm
	*bRe, *bIm = newBRe, newBIm
}

// ButterflyDITUnity is the stage-0 DIT butterfly specialization with W = 1,
// which omits the complex multiply entirely.
func ButterflyDITUnity[F Float](aRe, aIm, bRe, bIm []F) {
	n := len(aRe)
	lanes := laneWidth[F]()

	i := 0
	for ; i+lanes <= n; i += lanes {
		for l := range lanes {
			unityOne(&aRe[i+l], &aIm[i+l], &bRe[i+l], &bIm[i+l])
		}
	}

	for ; i < n; i++ {
		unityOne(&aRe[i], &aIm[i], &bRe[i], &bIm[i])
	}
}

func unityOne[F Float](aRe, aIm, bRe, bIm *F) {
	newARe := *aRe + *bRe
	newAIm := *aIm + *bIm
	newBRe := *aRe - *bRe
	newBIm := *aIm - *bIm

	*aRe, *aIm = newARe, newAIm
	*bRe, *bIm = newBRe, newBIm
}

// ButterflyDIF computes the decimation-in-frequency dual:
//
//	a' = a + b
//	b' = (a - b) * W
func ButterflyDIF[F Float](aRe, aIm, bRe, bIm, twRe, twIm []F) {
	half := len(aRe)
	lanes := laneWidth[F]()

	i := 0
	for ; i+lanes <= half; i += lanes {
		for l := range lanes {
			difOne(&aRe[i+l], &aIm[i+l], &bRe[i+l], &bIm[i+l], twRe[i+l], twIm[i+l])
		}
	}

	for ; i < half; i++ {
		difOne(&aRe[i], &aIm[i], &bRe[i], &bIm[i], twRe[i], twIm[i])
	}
}

func difOne[F Float](aRe, aIm, bRe, bIm *F, wRe, wIm F) {
	sumRe := *aRe + *bRe
	sumIm := *aIm + *bIm
	diffRe := *aRe - *bRe
	diffIm := *aIm - *bIm

	*aRe, *aIm = sumRe, sumIm
	*bRe = wRe*diffRe - wIm*diffIm
	*bIm = wRe*diffIm + wIm*diffRe
}

// ButterflyDIFUnity is the stage-0 DIF specialization with W = 1.
func ButterflyDIFUnity[F Float](aRe, aIm, bRe, bIm []F) {
	ButterflyDITUnity(aRe, aIm, bRe, bIm) // a+b, a-b is self-inverse at W=1
}
