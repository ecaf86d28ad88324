package tournament

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPopulation_CreateAssignsSequentialIDs(t *testing.T) {
	p := NewPopulation(100, 50)
	if err := p.Create(25, DefaultNames, NewSeededSource(1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Len() != 25 || p.AliveCount() != 25 {
		t.Fatalf("expected 25 alive, got len=%d alive=%d", p.Len(), p.AliveCount())
	}
	for i, c := range p.All() {
		if c.ID != i+1 {
			t.Fatalf("index %d: expected id %d, got %d", i, i+1, c.ID)
		}
		if c.Name == "" {
			t.Fatalf("id %d has no name", c.ID)
		}
		if c.X < 0 || c.X >= 100 || c.Y < 0 || c.Y >= 50 {
			t.Fatalf("id %d position (%.1f, %.1f) outside field", c.ID, c.X, c.Y)
		}
		if err := c.Stats.validate(); err != nil {
			t.Fatalf("id %d: %v", c.ID, err)
		}
	}
}

func TestPopulation_CreateDrawOrder(t *testing.T) {
	src := NewSequenceSource(0.25, 0.5, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	p := NewPopulation(800, 600)
	if err := p.Create(1, FixedName("Gi-hun"), src); err != nil {
		t.Fatalf("create: %v", err)
	}
	want := Competitor{
		ID: 1, Name: "Gi-hun", X: 200, Y: 300, Alive: true,
		Stats: Stats{Strength: 0.1, Agility: 0.2, Luck: 0.3, Intelligence: 0.4, Trust: 0.5, Betrayal: 0.6},
	}
	if diff := cmp.Diff(want, p.All()[0]); diff != "" {
		t.Fatalf("competitor mismatch (-want +got):\n%s", diff)
	}
	if src.Used() != 8 {
		t.Fatalf("expected 8 draws, got %d", src.Used())
	}
}

func TestPopulation_CreateZeroAndNegative(t *testing.T) {
	p := NewPopulation(0, 0)
	if err := p.Create(0, nil, NewSeededSource(1)); err != nil {
		t.Fatalf("create 0: %v", err)
	}
	if p.Len() != 0 || len(p.AliveSubset()) != 0 {
		t.Fatalf("expected empty population")
	}
	if err := p.Create(-1, nil, NewSeededSource(1)); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
}

func TestPopulation_CreateReplacesPrior(t *testing.T) {
	p := NewPopulation(0, 0)
	src := NewSeededSource(3)
	if err := p.Create(10, nil, src); err != nil {
		t.Fatalf("create: %v", err)
	}
	p.Eliminate(1, 2, 3)
	if err := p.Create(4, nil, src); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if p.Len() != 4 || p.AliveCount() != 4 {
		t.Fatalf("expected 4 fresh competitors, got len=%d alive=%d", p.Len(), p.AliveCount())
	}
	if _, status := p.Lookup(5); status != LookupUnknown {
		t.Fatalf("expected id 5 to be gone, got %s", status)
	}
}

func TestPopulation_EliminateIgnoresUnknownAndDead(t *testing.T) {
	p := populationOf(comp(1, Stats{}), comp(2, Stats{}), comp(3, Stats{}))
	got := p.Eliminate(2, 99, 2)
	if diff := cmp.Diff([]int{2}, got); diff != "" {
		t.Fatalf("flipped ids mismatch (-want +got):\n%s", diff)
	}
	if got := p.Eliminate(2); len(got) != 0 {
		t.Fatalf("expected re-elimination to be a no-op, got %v", got)
	}
	if diff := cmp.Diff([]int{1, 3}, ids(p.AliveSubset())); diff != "" {
		t.Fatalf("alive subset mismatch (-want +got):\n%s", diff)
	}
}

func TestPopulation_ByIDAndLookup(t *testing.T) {
	p := populationOf(comp(1, Stats{}), comp(2, Stats{}))
	p.Eliminate(2)

	if c, ok := p.ByID(1); !ok || c.ID != 1 {
		t.Fatalf("expected alive #1, got %+v ok=%v", c, ok)
	}
	if _, ok := p.ByID(2); ok {
		t.Fatalf("expected ByID to hide dead #2")
	}
	if c, status := p.Lookup(2); status != LookupDead || c.ID != 2 {
		t.Fatalf("expected dead #2, got %+v %s", c, status)
	}
	if _, status := p.Lookup(42); status != LookupUnknown {
		t.Fatalf("expected unknown, got %s", status)
	}
}

func TestPopulation_ReturnsCopies(t *testing.T) {
	p := populationOf(comp(1, Stats{Strength: 0.5}))
	all := p.All()
	all[0].Alive = false
	all[0].Stats.Strength = 0.9
	c, ok := p.ByID(1)
	if !ok || c.Stats.Strength != 0.5 {
		t.Fatalf("mutating a returned copy changed the store: %+v ok=%v", c, ok)
	}
}

func TestPopulation_RankingStablePartition(t *testing.T) {
	p := populationOf(comp(1, Stats{}), comp(2, Stats{}), comp(3, Stats{}))
	p.Eliminate(2)
	if diff := cmp.Diff([]int{1, 3, 2}, ids(p.Ranking())); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}

	p = populationOf(comp(1, Stats{}), comp(2, Stats{}), comp(3, Stats{}), comp(4, Stats{}))
	p.Eliminate(3, 1)
	if diff := cmp.Diff([]int{2, 4, 1, 3}, ids(p.Ranking())); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupStatus_String(t *testing.T) {
	cases := map[LookupStatus]string{
		LookupUnknown: "unknown",
		LookupFound:   "found",
		LookupDead:    "dead",
	}
	for status, want := range cases {
		if status.String() != want {
			t.Fatalf("expected %q, got %q", want, status.String())
		}
	}
}
