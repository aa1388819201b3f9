// Package simd contains the portable vectorized kernels shared by the fft
// and pcm packages: block arithmetic (scale/mul) and the complex radix-2
// butterfly used by every FFT stage.
//
// Every kernel processes the input in LaneWidth-sized chunks (selected from
// internal/cpu's detected feature set) and finishes any residue with a
// scalar tail loop, matching the chunked-with-tail shape a hand-written
// SSE/AVX/NEON kernel would have. The chunking only affects how the loop is
// structured, not the arithmetic performed per element: no architecture
// specific assembly is hand-written here, since the portable layer gets
// close enough to per-ISA kernels to not be worth the maintenance cost.
//
// Outputs are therefore bit-identical between every lane width, which is
// exactly the property the codec and FFT correctness tests rely on.
package simd

// Float is the set of scalar types the portable kernels operate on.
type Float interface {
	~float32 | ~float64
}
