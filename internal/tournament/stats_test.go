package tournament

import (
	"math"
	"testing"
)

func TestGenerateStats_DrawOrder(t *testing.T) {
	src := NewSequenceSource(0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	st := GenerateStats(src)
	want := Stats{Strength: 0.1, Agility: 0.2, Luck: 0.3, Intelligence: 0.4, Trust: 0.5, Betrayal: 0.6}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}
	if src.Used() != 6 {
		t.Fatalf("expected 6 draws, got %d", src.Used())
	}
}

func TestGenerateStats_InRange(t *testing.T) {
	src := NewSeededSource(7)
	for i := 0; i < 500; i++ {
		if err := GenerateStats(src).validate(); err != nil {
			t.Fatalf("generated stats out of range: %v", err)
		}
	}
}

func TestStats_Reflex(t *testing.T) {
	st := Stats{Agility: 0.4, Luck: 0.8}
	if math.Abs(st.Reflex()-0.6) > 1e-12 {
		t.Fatalf("expected 0.6, got %.6f", st.Reflex())
	}
}

func TestStats_ValidateRejectsOutOfRange(t *testing.T) {
	cases := []Stats{
		{Strength: 1.0},
		{Agility: -0.01},
		{Luck: math.NaN()},
		{Betrayal: math.Inf(1)},
	}
	for i, st := range cases {
		if err := st.validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, st)
		}
	}
}

func TestDefaultNames(t *testing.T) {
	src := NewSequenceSource(0, 0.999)
	if got := DefaultNames(src); got != "Lee Seo-jun" {
		t.Fatalf("expected %q, got %q", "Lee Seo-jun", got)
	}
	if got := DefaultNames(NewSequenceSource(0.5, 0.5)); got != "Choi Tae-hyun" {
		t.Fatalf("expected %q, got %q", "Choi Tae-hyun", got)
	}
}
