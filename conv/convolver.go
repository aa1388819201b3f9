package conv

import (
	"fmt"

	"github.com/cwbudde/algo-dspcore/fft"
)

// Convolver implements partitioned overlap-save convolution at block
// size N = 2^M against a kernel of up to K partitions, using a 2N-point
// real FFT engine. One Convolver owns its accumulation ring, previous
// input buffer, and scratch; it references (does not own) the
// frequency-domain kernel arrays produced by InitKernel.
//
// Two Convolver instances may run concurrently on different goroutines
// provided their buffers (including any shared Engine) do not alias
// mutable state; the Engine itself is immutable and safely shared.
type Convolver[F Float] struct {
	n       int // block size (time domain)
	maxPart int // K

	engine *fft.Engine[F] // order log2(2N)

	accRe, accIm []Partition[F] // ring of maxPart accumulator slots
	ringHead     int            // physical slot index currently "ready to emit"

	lastInput Partition[F] // FD transform of the most recent input block
	prevBlock []F          // previous time-domain input block, length N

	timeBuf []F // scratch, length 2N

	realScratch *fft.RealScratch[F] // scratch for ForwardRealScratch/InverseRealScratch, length N/2 each

	count int // active partition count for the current kernel

	inputHasData   bool
	st             state
	leftover       int
	flushDenormals bool
}

// NewConvolver constructs a Convolver for block size n = 2^order and up
// to maxPartitions kernel partitions. engine must be an order-(order+1)
// Engine (size 2n); the same Engine may be shared across many Convolver
// instances.
func NewConvolver[F Float](engine *fft.Engine[F], n, maxPartitions int, opts ...Option[F]) (*Convolver[F], error) {
	if engine.N() != 2*n {
		return nil, fmt.Errorf("%w: engine size %d, want %d", ErrLengthMismatch, engine.N(), 2*n)
	}

	c := &Convolver[F]{
		n:           n,
		maxPart:     maxPartitions,
		engine:      engine,
		accRe:       make([]Partition[F], maxPartitions),
		accIm:       make([]Partition[F], maxPartitions),
		lastInput:   Partition[F]{Re: make([]F, n), Im: make([]F, n)},
		prevBlock:   make([]F, n),
		timeBuf:     make([]F, 2*n),
		realScratch: engine.NewRealScratch(),
	}

	for i := range c.accRe {
		c.accRe[i] = Partition[F]{Re: make([]F, n), Im: make([]F, n)}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// slot maps partition index p to its physical ring slot. The ring
// rotates modulo the active kernel's partition count, not the ring's
// maximum capacity: an accumulator slot only ever receives
// contributions from partitions [0, count), so slots beyond count must
// never enter the rotation or a dead (always-zero) slot would
// eventually reach the head.
func (c *Convolver[F]) slot(p int) int {
	return (c.ringHead + p) % c.count
}

func (c *Convolver[F]) zeroSlot(idx int) {
	re := c.accRe[idx].Re
	im := c.accRe[idx].Im

	for i := range re {
		re[i] = 0
		im[i] = 0
	}
}

// transformInput builds the length-2N [prevBlock | in] buffer and
// real-FFTs it into c.lastInput, then stores in as the new prevBlock.
func (c *Convolver[F]) transformInput(in []F) error {
	copy(c.timeBuf[:c.n], c.prevBlock)
	copy(c.timeBuf[c.n:], in)

	if err := c.engine.ForwardRealScratch(c.timeBuf, c.lastInput.Re, c.lastInput.Im, c.realScratch); err != nil {
		return err
	}

	copy(c.prevBlock, in)

	return nil
}

// emit inverse-transforms the head accumulator, writes the second half
// of the result, scaled by 1/2N to undo the un-normalized inverse, to
// out, and rotates the ring. The first half carries the circular
// wrap-around of the 2N-point product and is discarded (overlap-save).
func (c *Convolver[F]) emit(out []F) error {
	head := c.ringHead

	if err := c.engine.InverseRealScratch(c.accRe[head].Re, c.accRe[head].Im, c.timeBuf, c.realScratch); err != nil {
		return err
	}

	scale := F(1) / F(2*c.n)

	for i := 0; i < c.n; i++ {
		out[i] = c.timeBuf[c.n+i] * scale
	}

	if c.flushDenormals {
		flushDenormalBlock(out)
	}

	c.zeroSlot(head)
	c.ringHead = (head + 1) % c.count

	return nil
}

func (c *Convolver[F]) checkBlock(name string, buf []F) error {
	if len(buf) != c.n {
		return fmt.Errorf("%w: %s has length %d, want %d", ErrLengthMismatch, name, len(buf), c.n)
	}

	return nil
}
