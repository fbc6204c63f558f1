package engine

import (
	"errors"
	"testing"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}
}

func TestRNG_Float64Range(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, want [0, 1)", f)
		}
	}
}

func TestRNG_IntNInclusive(t *testing.T) {
	r := NewRNG(7)
	sawLow, sawHigh := false, false
	for i := 0; i < 1000; i++ {
		n := r.IntN(3, 5)
		if n < 3 || n > 5 {
			t.Fatalf("IntN(3, 5) = %d, want [3, 5]", n)
		}
		if n == 3 {
			sawLow = true
		}
		if n == 5 {
			sawHigh = true
		}
	}
	if !sawLow || !sawHigh {
		t.Error("IntN(3, 5) never produced both bounds over 1000 draws")
	}
	if n := r.IntN(4, 4); n != 4 {
		t.Errorf("IntN(4, 4) = %d, want 4", n)
	}
}

func TestRNG_CaptureRestore(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 10; i++ {
		r.Float64()
	}
	token := r.CaptureState()

	var want []float64
	for i := 0; i < 20; i++ {
		want = append(want, r.Float64())
	}

	if err := r.RestoreState(token); err != nil {
		t.Fatalf("RestoreState: %v", err)
	}
	for i, w := range want {
		if got := r.Float64(); got != w {
			t.Fatalf("draw %d after restore = %v, want %v", i, got, w)
		}
	}
}

func TestRNG_RestoreIntoFreshInstance(t *testing.T) {
	a := NewRNG(123)
	a.Float64()
	token := a.CaptureState()

	b := NewRNG(0)
	if err := b.RestoreState(token); err != nil {
		t.Fatalf("RestoreState: %v", err)
	}
	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged after restoring token into fresh instance", i)
		}
	}
}

func TestRNG_RestoreCorruptToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not hex", "zzzz"},
		{"empty", ""},
		{"truncated", "abcd"},
		{"wrong length", "00112233445566778899"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRNG(1)
			before := r.CaptureState()
			err := r.RestoreState(tt.token)
			if !errors.Is(err, ErrCorruptRNGState) {
				t.Fatalf("RestoreState(%q) err = %v, want ErrCorruptRNGState", tt.token, err)
			}
			if r.CaptureState() != before {
				t.Error("failed restore must leave the generator state untouched")
			}
		})
	}
}

func TestRNG_Choice(t *testing.T) {
	r := NewRNG(5)
	xs := []string{"a", "b", "c"}
	counts := make(map[string]int)
	for i := 0; i < 300; i++ {
		counts[Choice(r, xs)]++
	}
	for _, x := range xs {
		if counts[x] == 0 {
			t.Errorf("Choice never picked %q over 300 draws", x)
		}
	}
}

func TestRNG_Shuffle(t *testing.T) {
	r := NewRNG(11)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle lost elements: %v", xs)
	}
}
