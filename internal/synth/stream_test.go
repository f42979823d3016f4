package synth

import (
	"math"
	"testing"
)

// Reference values below are what numpy's RandomState produces for the
// same seeds.

func TestLegacyStream_Double(t *testing.T) {
	tests := []struct {
		seed uint32
		want float64
	}{
		{seed: 123, want: 0.6964691855978616},
		{seed: 0, want: 0.5488135039273248},
	}
	for _, tt := range tests {
		if got := newLegacyStream(tt.seed).double(); got != tt.want {
			t.Errorf("seed %d: double() = %v, want %v", tt.seed, got, tt.want)
		}
	}
}

func TestLegacyStream_Normal(t *testing.T) {
	want := []float64{1.764052345967664, 0.4001572083672233, 0.9787379841057392}
	got := newLegacyStream(0).normal(len(want))
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("normal[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLegacyStream_Integers(t *testing.T) {
	want := []int{5, 0, 3, 3, 7}
	got := newLegacyStream(0).integers(0, 10, len(want))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("integers(0, 10) = %v, want %v", got, want)
		}
	}
}

func TestLegacyStream_IntegersSingleValue(t *testing.T) {
	s := newLegacyStream(1)
	before := *s.mt
	got := s.integers(7, 8, 4)
	for _, v := range got {
		if v != 7 {
			t.Fatalf("integers(7, 8) = %v, want all 7", got)
		}
	}
	if *s.mt != before {
		t.Fatalf("a single-value range must not consume the stream")
	}
}

func TestLegacyStream_GaussCacheSpansCalls(t *testing.T) {
	a := newLegacyStream(42).normal(3)

	s := newLegacyStream(42)
	b := append(s.normal(1), s.normal(2)...)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("split draws differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestLegacyStream_Choice(t *testing.T) {
	// One double per draw; 1 iff the double is at least the first weight.
	ref := newLegacyStream(7)
	u := ref.uniform(1000)

	got := newLegacyStream(7).choice([]float64{0.85, 0.15}, 1000)
	for i := range got {
		want := 0
		if u[i] >= 0.85 {
			want = 1
		}
		if got[i] != want {
			t.Fatalf("choice[%d] = %d for u=%v, want %d", i, got[i], u[i], want)
		}
	}
}

func TestIndependentStream_Ranges(t *testing.T) {
	s := &independentStream{seed: 9}

	for _, v := range s.integers(20, 80, 5000) {
		if v < 20 || v >= 80 {
			t.Fatalf("integers(20, 80) produced %d", v)
		}
	}
	for _, v := range s.uniform(5000) {
		if v < 0 || v >= 1 {
			t.Fatalf("uniform produced %v", v)
		}
	}
	for _, v := range s.choice([]float64{0.2, 0.8}, 5000) {
		if v != 0 && v != 1 {
			t.Fatalf("choice produced %d", v)
		}
	}
	if s.column != 3 {
		t.Fatalf("column counter = %d, want 3", s.column)
	}
}

func TestParseStreamKind(t *testing.T) {
	for _, s := range []string{"legacy", "independent"} {
		k, err := ParseStreamKind(s)
		if err != nil || string(k) != s {
			t.Errorf("ParseStreamKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := ParseStreamKind("numpy"); err == nil {
		t.Errorf("ParseStreamKind(\"numpy\") returned no error")
	}
}
