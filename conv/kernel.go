package conv

import (
	"fmt"

	"github.com/cwbudde/algo-dspcore/fft"
)

// InitKernel partitions the length-L impulse response h into
// count = ceil(L/n) blocks, each transformed by a 2n-point real FFT
// into one frequency-domain Partition. engine must be constructed for
// order log2(2*n); out must have length >= count (extra slots are left
// untouched). The final block is zero-padded if L is not a multiple
// of n. Returns count, or ErrKernelTooLong if it exceeds len(out).
func InitKernel[F Float](engine *fft.Engine[F], n int, h []F, out []Partition[F]) (int, error) {
	if engine.N() != 2*n {
		return 0, fmt.Errorf("%w: engine size %d, want %d", ErrLengthMismatch, engine.N(), 2*n)
	}

	count := (len(h) + n - 1) / n
	if count == 0 {
		return 0, nil
	}

	if count > len(out) {
		return 0, fmt.Errorf("%w: %d partitions needed, %d available", ErrKernelTooLong, count, len(out))
	}

	buf := make([]F, 2*n)

	for p := 0; p < count; p++ {
		for i := range buf {
			buf[i] = 0
		}

		start := p * n
		end := start + n
		if end > len(h) {
			end = len(h)
		}

		copy(buf[:end-start], h[start:end])

		if len(out[p].Re) != n || len(out[p].Im) != n {
			return 0, fmt.Errorf("%w: partition %d has wrong shape", ErrLengthMismatch, p)
		}

		if err := engine.ForwardReal(buf, out[p].Re, out[p].Im); err != nil {
			return 0, err
		}
	}

	return count, nil
}
