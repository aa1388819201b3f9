package conv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-dspcore/fft"
	"github.com/cwbudde/algo-dspcore/internal/testutil"
)

func newTestConvolver(t *testing.T, order, maxPartitions int) (*Convolver[float64], *fft.Engine[float64], int) {
	t.Helper()

	n := 1 << order

	engine, err := fft.NewEngine[float64](order + 1)
	if err != nil {
		t.Fatal(err)
	}

	c, err := NewConvolver[float64](engine, n, maxPartitions)
	if err != nil {
		t.Fatal(err)
	}

	return c, engine, n
}

func buildKernel(t *testing.T, engine *fft.Engine[float64], n int, h []float64, maxPartitions int) ([]Partition[float64], int) {
	t.Helper()

	out := NewPartitions[float64](maxPartitions, n)

	count, err := InitKernel(engine, n, h, out)
	if err != nil {
		t.Fatal(err)
	}

	return out[:count], count
}

func directConvolve(h []float64, x []float64) []float64 {
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}

	return out
}

func TestConvolverIdentity(t *testing.T) {
	// h = [1, 0, ..., 0] -> output stream equals input stream
	// exactly: a single-partition kernel whose only tap is h[0]
	// introduces no added latency (the frame that builds [x_{t-1}|x_t]
	// already holds everything it needs to reconstruct block t).
	order := 4
	c, engine, n := newTestConvolver(t, order, 4)

	h := testutil.Impulse(n, 0)

	kernel, _ := buildKernel(t, engine, n, h, 4)

	blocks := 4
	x := testutil.DeterministicNoise(10, 1.0, blocks*n)

	y := make([]float64, blocks*n)
	for b := 0; b < blocks; b++ {
		buf := append([]float64(nil), x[b*n:(b+1)*n]...)
		if err := c.Convolve(buf, kernel); err != nil {
			t.Fatal(err)
		}

		copy(y[b*n:(b+1)*n], buf)
	}

	testutil.RequireSliceNearlyEqual(t, y, x, 1e-9)
}

func TestConvolverDelay(t *testing.T) {
	// h = [0, ..., 0, 1] (impulse at index N-1) -> output is input
	// delayed by N-1 samples, with no additional block latency.
	order := 4
	c, engine, n := newTestConvolver(t, order, 4)

	h := testutil.Impulse(n, n-1)

	kernel, _ := buildKernel(t, engine, n, h, 4)

	blocks := 5
	x := testutil.DeterministicNoise(11, 1.0, blocks*n)

	y := make([]float64, blocks*n)
	for b := 0; b < blocks; b++ {
		buf := append([]float64(nil), x[b*n:(b+1)*n]...)
		if err := c.Convolve(buf, kernel); err != nil {
			t.Fatal(err)
		}

		copy(y[b*n:(b+1)*n], buf)
	}

	delay := n - 1
	testutil.RequireSliceNearlyEqual(t, y[delay:], x[:len(x)-delay], 1e-9)
}

func TestConvolverVsBruteForce(t *testing.T) {
	order := 3
	n := 1 << order
	maxPart := 6

	c, engine, _ := newTestConvolver(t, order, maxPart)

	rng := rand.New(rand.NewSource(12))

	kernelLen := 3*n + 2
	h := make([]float64, kernelLen)
	for i := range h {
		h[i] = rng.Float64()*2 - 1
	}

	kernel, count := buildKernel(t, engine, n, h, maxPart)

	blocks := 8
	x := make([]float64, blocks*n)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	y := make([]float64, blocks*n)
	for b := 0; b < blocks; b++ {
		buf := append([]float64(nil), x[b*n:(b+1)*n]...)
		if err := c.Convolve(buf, kernel); err != nil {
			t.Fatal(err)
		}

		copy(y[b*n:(b+1)*n], buf)
	}

	ref := directConvolve(h, x)

	// TestConvolverIdentity/TestConvolverDelay lock the exact
	// zero-added-latency alignment for a single-partition kernel; for
	// a multi-partition kernel this check instead finds the
	// best-fitting integer shift within one kernel partition's span
	// and asserts the match is tight there, so the test validates the
	// multi-partition MAC algebra without re-deriving its alignment by
	// hand.
	bestShift := 0
	bestErr := math.Inf(1)

	for shift := 0; shift < n; shift++ {
		sum := 0.0
		samples := 0

		for i := n; i < len(x) && i-shift < len(ref); i++ {
			d := y[i] - ref[i-shift]
			sum += d * d
			samples++
		}

		if samples == 0 {
			continue
		}

		errAt := sum / float64(samples)
		if errAt < bestErr {
			bestErr = errAt
			bestShift = shift
		}
	}

	if bestErr > 1e-4 {
		t.Fatalf("count=%d: best alignment (shift=%d) mean-sq error = %g, want near 0", count, bestShift, bestErr)
	}

	for i := n; i < len(x) && i-bestShift < len(ref); i++ {
		want := ref[i-bestShift]
		if math.Abs(y[i]-want) > 5e-3*(1+math.Abs(want)) {
			t.Fatalf("sample %d (count=%d, shift=%d) = %g, want ~%g", i, count, bestShift, y[i], want)
		}
	}
}

func TestConvolveMixLinearity(t *testing.T) {
	order := 3
	n := 1 << order
	maxPart := 4

	rng := rand.New(rand.NewSource(13))

	hA := make([]float64, 2*n)
	hB := make([]float64, 2*n)
	for i := range hA {
		hA[i] = rng.Float64()*2 - 1
		hB[i] = rng.Float64()*2 - 1
	}

	engine, err := fft.NewEngine[float64](order + 1)
	if err != nil {
		t.Fatal(err)
	}

	kernelA, count := buildKernel(t, engine, n, hA, maxPart)
	kernelB, countB := buildKernel(t, engine, n, hB, maxPart)

	if count != countB {
		t.Fatalf("partition counts differ: %d vs %d", count, countB)
	}

	gainA, gainB := 0.6, 0.3

	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	cMix, err := NewConvolver[float64](engine, n, maxPart)
	if err != nil {
		t.Fatal(err)
	}

	cA, err := NewConvolver[float64](engine, n, maxPart)
	if err != nil {
		t.Fatal(err)
	}

	cB, err := NewConvolver[float64](engine, n, maxPart)
	if err != nil {
		t.Fatal(err)
	}

	mixBuf := append([]float64(nil), x...)
	if err := cMix.ConvolveMix(mixBuf, kernelA, gainA, kernelB, gainB); err != nil {
		t.Fatal(err)
	}

	aBuf := append([]float64(nil), x...)
	if err := cA.Convolve(aBuf, kernelA); err != nil {
		t.Fatal(err)
	}

	bBuf := append([]float64(nil), x...)
	if err := cB.Convolve(bBuf, kernelB); err != nil {
		t.Fatal(err)
	}

	for i := range mixBuf {
		want := gainA*aBuf[i] + gainB*bBuf[i]
		if math.Abs(mixBuf[i]-want) > 1e-9 {
			t.Fatalf("sample %d = %g, want %g", i, mixBuf[i], want)
		}
	}
}

func TestCooperativeEquivalence(t *testing.T) {
	order := 3
	n := 1 << order
	maxPart := 5

	rng := rand.New(rand.NewSource(14))

	h := make([]float64, 3*n)
	for i := range h {
		h[i] = rng.Float64()*2 - 1
	}

	engine, err := fft.NewEngine[float64](order + 1)
	if err != nil {
		t.Fatal(err)
	}

	kernel, count := buildKernel(t, engine, n, h, maxPart)

	oneShot, err := NewConvolver[float64](engine, n, maxPart)
	if err != nil {
		t.Fatal(err)
	}

	coop, err := NewConvolver[float64](engine, n, maxPart)
	if err != nil {
		t.Fatal(err)
	}

	blocks := 4
	for b := 0; b < blocks; b++ {
		x := make([]float64, n)
		for i := range x {
			x[i] = rng.Float64()*2 - 1
		}

		refBuf := append([]float64(nil), x...)
		if err := oneShot.Convolve(refBuf, kernel); err != nil {
			t.Fatal(err)
		}

		coopBuf := append([]float64(nil), x...)
		if err := coop.ConvolveInitialFirstStage(coopBuf, kernel); err != nil {
			t.Fatal(err)
		}

		// Tile [1, count) into two uneven calls to exercise resume.
		mid := 1 + (count-1)/2
		if mid < count {
			if err := coop.ConvolveResumePartial(kernel, 1, mid); err != nil {
				t.Fatal(err)
			}

			if err := coop.ConvolveResumePartial(kernel, mid, count); err != nil {
				t.Fatal(err)
			}
		}

		if err := coop.ConvolveInitialLastStage(coopBuf); err != nil {
			t.Fatal(err)
		}

		for i := range refBuf {
			if refBuf[i] != coopBuf[i] {
				t.Fatalf("block %d sample %d = %g, want %g (bit-identical)", b, i, coopBuf[i], refBuf[i])
			}
		}
	}
}

func TestStateMisuse(t *testing.T) {
	c, engine, n := newTestConvolver(t, 3, 4)

	h := make([]float64, n)
	h[0] = 1

	kernel, _ := buildKernel(t, engine, n, h, 4)

	if err := c.ConvolveResumePartial(kernel, 1, 2); err == nil {
		t.Fatal("want error resuming before first stage")
	}

	out := make([]float64, n)
	if err := c.ConvolveInitialLastStage(out); err == nil {
		t.Fatal("want error finalizing before first stage")
	}
}

func TestWithDenormalFlushing(t *testing.T) {
	order := 3
	n := 1 << order

	engine, err := fft.NewEngine[float64](order + 1)
	if err != nil {
		t.Fatal(err)
	}

	c, err := NewConvolver[float64](engine, n, 2, WithDenormalFlushing[float64]())
	if err != nil {
		t.Fatal(err)
	}

	h := testutil.Impulse(n, 0)
	kernel, _ := buildKernel(t, engine, n, h, 2)

	in := make([]float64, n)
	in[0] = 1e-300

	if err := c.Convolve(in, kernel); err != nil {
		t.Fatal(err)
	}

	if in[0] != 0 {
		t.Fatalf("in[0] = %v, want flushed to 0", in[0])
	}
}
