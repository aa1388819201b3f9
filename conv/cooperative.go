package conv

import "fmt"

// ConvolveInitialFirstStage begins a new frame: transforms in, MACs
// only partition 0 into the accumulator, and marks the frame in flight
// with count-1 partitions left to do. Must be called from Idle.
func (c *Convolver[F]) ConvolveInitialFirstStage(in []F, kernel []Partition[F]) error {
	if c.st != stateIdle {
		return c.st.error("ConvolveInitialFirstStage")
	}

	if err := c.checkBlock("in", in); err != nil {
		return err
	}

	count := len(kernel)
	if count == 0 || count > c.maxPart {
		return fmt.Errorf("%w: kernel has %d partitions, max %d", ErrKernelTooLong, count, c.maxPart)
	}

	if err := c.transformInput(in); err != nil {
		return err
	}

	c.count = count

	slot0 := c.slot(0)
	macPartition(c.accRe[slot0].Re, c.accRe[slot0].Im, c.lastInput.Re, c.lastInput.Im, kernel[0].Re, kernel[0].Im)

	c.inputHasData = true
	c.leftover = count - 1

	if c.leftover == 0 {
		c.st = stateReadyToEmit
	} else {
		c.st = stateFrameInFlight
	}

	return nil
}

// ConvolveResumePartial MACs partitions [start, end) of kernel into
// their respective ring slots. Multiple calls may tile [1, count) in
// any partition of that range; leftover is decremented by end-start.
// Must be called from FrameInFlight.
func (c *Convolver[F]) ConvolveResumePartial(kernel []Partition[F], start, end int) error {
	if c.st != stateFrameInFlight {
		return c.st.error("ConvolveResumePartial")
	}

	if start < 1 || end > c.count || start > end {
		return fmt.Errorf("%w: range [%d, %d) invalid for count %d", ErrLengthMismatch, start, end, c.count)
	}

	for p := start; p < end; p++ {
		slot := c.slot(p)
		macPartition(c.accRe[slot].Re, c.accRe[slot].Im, c.lastInput.Re, c.lastInput.Im, kernel[p].Re, kernel[p].Im)
	}

	c.leftover -= end - start

	if c.leftover == 0 {
		c.st = stateReadyToEmit
	} else if c.leftover < 0 {
		return fmt.Errorf("%w: resumed past count", ErrStateMisuse)
	}

	return nil
}

// ConvolveInitialLastStage finalizes the current frame: inverse-FFTs
// the head accumulator, keeps its second half (overlap-save), scales by
// 1/2N, writes out, rotates the ring, and returns to Idle. Must be
// called from ReadyToEmit.
func (c *Convolver[F]) ConvolveInitialLastStage(out []F) error {
	if c.st != stateReadyToEmit {
		return c.st.error("ConvolveInitialLastStage")
	}

	if err := c.checkBlock("out", out); err != nil {
		return err
	}

	if err := c.emit(out); err != nil {
		return err
	}

	c.st = stateIdle

	return nil
}

// Convolve is the one-shot form: it runs
// ConvolveInitialFirstStage -> ConvolveResumePartial(1, count) ->
// ConvolveInitialLastStage in a single call, and is bit-identical to
// any cooperative tiling of the same frame.
func (c *Convolver[F]) Convolve(inout []F, kernel []Partition[F]) error {
	if err := c.ConvolveInitialFirstStage(inout, kernel); err != nil {
		return err
	}

	if c.st == stateFrameInFlight {
		if err := c.ConvolveResumePartial(kernel, 1, c.count); err != nil {
			return err
		}
	}

	return c.ConvolveInitialLastStage(inout)
}

// ConvolveMix multiplies the input spectrum against
// gainA*kernelA_p + gainB*kernelB_p on each partition, a frequency-
// domain crossfade between two kernels. kernelA and kernelB must share
// a partition count; the caller is responsible for zero-padding the
// shorter kernel to match.
func (c *Convolver[F]) ConvolveMix(inout []F, kernelA []Partition[F], gainA F, kernelB []Partition[F], gainB F) error {
	if c.st != stateIdle {
		return c.st.error("ConvolveMix")
	}

	if err := c.checkBlock("inout", inout); err != nil {
		return err
	}

	count := len(kernelA)
	if count != len(kernelB) {
		return fmt.Errorf("%w: %d vs %d", ErrPartitionMismatch, count, len(kernelB))
	}

	if count == 0 || count > c.maxPart {
		return fmt.Errorf("%w: kernel has %d partitions, max %d", ErrKernelTooLong, count, c.maxPart)
	}

	if err := c.transformInput(inout); err != nil {
		return err
	}

	c.count = count

	for p := 0; p < count; p++ {
		slot := c.slot(p)
		macPartitionMixed(
			c.accRe[slot].Re, c.accRe[slot].Im,
			c.lastInput.Re, c.lastInput.Im,
			kernelA[p].Re, kernelA[p].Im, gainA,
			kernelB[p].Re, kernelB[p].Im, gainB,
		)
	}

	c.inputHasData = true
	c.st = stateReadyToEmit

	return c.ConvolveInitialLastStage(inout)
}
