package pcm

import (
	"math"
	"math/rand"
	"testing"
)

func TestU8Identity(t *testing.T) {
	// [0x00, 0x80, 0xFF] -> to_f32 -> [-1.0, 0.0, 127/128].
	in := []uint8{0x00, 0x80, 0xFF}
	out := make([]float32, 3)

	if err := ToFloat32FromU8(in, out); err != nil {
		t.Fatal(err)
	}

	want := []float32{-1.0, 0.0, 127.0 / 128.0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestS24SignExtension(t *testing.T) {
	// bytes [0xFF, 0xFF, 0x7F] -> to_s32 = 0x7FFFFF;
	// bytes [0x00, 0x00, 0x80] -> to_s32 = -0x800000.
	in := []byte{0xFF, 0xFF, 0x7F, 0x00, 0x00, 0x80}
	out := make([]int32, 2)

	if err := ToS32FromS24(in, out); err != nil {
		t.Fatal(err)
	}

	if out[0] != 0x7FFFFF {
		t.Fatalf("sample 0 = %#x, want 0x7fffff", out[0])
	}

	if out[1] != -0x800000 {
		t.Fatalf("sample 1 = %#x, want -0x800000", out[1])
	}
}

func TestS24RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	n := 64
	in := make([]int32, n)
	for i := range in {
		in[i] = int32(rng.Intn(1<<24) - (1 << 23))
	}

	packed := make([]byte, 3*n)
	if err := FromS32ToS24(in, packed); err != nil {
		t.Fatal(err)
	}

	back := make([]int32, n)
	if err := ToS32FromS24(packed, back); err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if back[i] != in[i] {
			t.Fatalf("sample %d = %d, want %d", i, back[i], in[i])
		}
	}
}

func TestS32RoundTripExceptClamp(t *testing.T) {
	// S32 round trip holds for every value except the documented
	// positive clamp at 2147483520.
	rng := rand.New(rand.NewSource(2))

	n := 256
	in := make([]int32, n)
	for i := range in {
		in[i] = rng.Int31()
	}

	f32 := make([]float32, n)
	if err := ToFloat32FromS32(in, f32); err != nil {
		t.Fatal(err)
	}

	back := make([]int32, n)
	if err := FromFloat32ToS32(f32, back); err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if back[i] != in[i] && back[i] != S32Max {
			t.Fatalf("sample %d = %d, want %d (or clamp %d)", i, back[i], in[i], S32Max)
		}
	}
}

func TestSaturation(t *testing.T) {
	in := []float32{float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN())}
	out := make([]int16, 3)

	if err := FromFloat32ToS16(in, out); err != nil {
		t.Fatal(err)
	}

	if out[0] != S16Max {
		t.Fatalf("+Inf = %d, want %d", out[0], S16Max)
	}

	if out[1] != S16Min {
		t.Fatalf("-Inf = %d, want %d", out[1], S16Min)
	}

	if out[2] != 0 {
		t.Fatalf("NaN = %d, want 0", out[2])
	}
}

func TestDitherDeterminism(t *testing.T) {
	n := 100
	in := make([]float32, n)
	rng := rand.New(rand.NewSource(3))
	for i := range in {
		in[i] = float32(rng.Float64()*2 - 1)
	}

	out1 := make([]int16, n)
	out2 := make([]int16, n)

	seed1, err := DitheredReduceF32ToS16(in, out1, Seed{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	seed2, err := DitheredReduceF32ToS16(in, out2, Seed{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	if seed1 != seed2 {
		t.Fatalf("seeds diverged: %v vs %v", seed1, seed2)
	}

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("sample %d diverged: %d vs %d", i, out1[i], out2[i])
		}
	}
}

func TestDeinterleave2RoundTrip(t *testing.T) {
	n := 32
	x := make([]float32, 2*n)
	rng := rand.New(rand.NewSource(4))
	for i := range x {
		x[i] = float32(rng.Float64())
	}

	ch0 := make([]float32, n)
	ch1 := make([]float32, n)

	if err := Deinterleave2(x, ch0, ch1); err != nil {
		t.Fatal(err)
	}

	back := make([]float32, 2*n)
	if err := Interleave2(ch0, ch1, back); err != nil {
		t.Fatal(err)
	}

	for i := range x {
		if back[i] != x[i] {
			t.Fatalf("sample %d = %v, want %v", i, back[i], x[i])
		}
	}
}

func TestDeinterleave4RoundTrip(t *testing.T) {
	n := 16
	x := make([]float64, 4*n)
	rng := rand.New(rand.NewSource(5))
	for i := range x {
		x[i] = rng.Float64()
	}

	ch0 := make([]float64, n)
	ch1 := make([]float64, n)
	ch2 := make([]float64, n)
	ch3 := make([]float64, n)

	if err := Deinterleave4(x, ch0, ch1, ch2, ch3); err != nil {
		t.Fatal(err)
	}

	back := make([]float64, 4*n)
	if err := Interleave4(ch0, ch1, ch2, ch3, back); err != nil {
		t.Fatal(err)
	}

	for i := range x {
		if back[i] != x[i] {
			t.Fatalf("sample %d = %v, want %v", i, back[i], x[i])
		}
	}
}

func TestU8ToS16(t *testing.T) {
	in := []uint8{0x00, 0x80, 0xFF}
	out := make([]int16, 3)

	if err := U8ToS16(in, out); err != nil {
		t.Fatal(err)
	}

	want := []int16{-32768, 0, 32512}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, out[i], want[i])
		}
	}
}
