package tournament

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRedLightGreenLight_Threshold(t *testing.T) {
	alive := []Competitor{
		comp(1, Stats{Agility: 0.8, Luck: 0.6}), // reflex 0.7
		comp(2, Stats{Agility: 0.2, Luck: 0.2}), // reflex 0.2
		comp(3, Stats{Agility: 0.5, Luck: 0.5}), // reflex 0.5
	}
	src := NewSequenceSource(0.69, 0.21, 0.5)
	out := RedLightGreenLight(alive, src)
	if diff := cmp.Diff([]int{2}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
	if src.Used() != 3 {
		t.Fatalf("expected one draw per competitor, got %d", src.Used())
	}
}

func TestHoneycomb_Threshold(t *testing.T) {
	alive := []Competitor{
		comp(4, Stats{Intelligence: 0.9}),
		comp(8, Stats{Intelligence: 0.1}),
	}
	out := Honeycomb(alive, NewSequenceSource(0.95, 0.05))
	if diff := cmp.Diff([]int{4}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
}

func TestGlassBridge_Threshold(t *testing.T) {
	alive := []Competitor{
		comp(1, Stats{Luck: 0.3}),
		comp(2, Stats{Luck: 0.3}),
	}
	out := GlassBridge(alive, NewSequenceSource(0.3, 0.31))
	if diff := cmp.Diff([]int{2}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
}

func TestSurvivalRounds_EmptyAlive(t *testing.T) {
	for _, rule := range []Rule{RedLightGreenLight, Honeycomb, GlassBridge, TugOfWar, Marbles} {
		src := NewSequenceSource(0.5)
		out := rule(nil, src)
		if len(out.Eliminated) != 0 || len(out.Warnings) != 0 {
			t.Fatalf("expected empty outcome, got %+v", out)
		}
		if src.Used() != 0 {
			t.Fatalf("expected no draws on an empty field, got %d", src.Used())
		}
	}
}

func TestTugOfWar_WeakerTeamLoses(t *testing.T) {
	var alive []Competitor
	for i := 1; i <= 4; i++ {
		alive = append(alive, comp(i, Stats{Strength: 0.9}))
	}
	for i := 5; i <= 8; i++ {
		alive = append(alive, comp(i, Stats{Strength: 0.1}))
	}
	src := NewSequenceSource(0.5)
	out := TugOfWar(alive, src)
	if diff := cmp.Diff([]int{5, 6, 7, 8}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
	if src.Used() != 0 {
		t.Fatalf("tug of war must not draw, used %d", src.Used())
	}
}

func TestTugOfWar_FirstTeamLosesWhenStrictlyWeaker(t *testing.T) {
	var alive []Competitor
	for i := 1; i <= 4; i++ {
		alive = append(alive, comp(i, Stats{Strength: 0.1}))
	}
	for i := 5; i <= 8; i++ {
		alive = append(alive, comp(i, Stats{Strength: 0.2}))
	}
	out := TugOfWar(alive, NewSequenceSource())
	if diff := cmp.Diff([]int{1, 2, 3, 4}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
}

func TestTugOfWar_TieEliminatesSecondTeam(t *testing.T) {
	alive := aliveRun(8) // every strength 0.1
	out := TugOfWar(alive, NewSequenceSource())
	if diff := cmp.Diff([]int{5, 6, 7, 8}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
}

func TestTugOfWar_TrailingTeamUntouched(t *testing.T) {
	// Ten alive: teams [1-4] [5-8] [9-10]; the last team has no opponent.
	alive := aliveRun(10)
	alive[0].Stats.Strength = 0.9
	out := TugOfWar(alive, NewSequenceSource())
	if diff := cmp.Diff([]int{5, 6, 7, 8}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}

	out = TugOfWar(aliveRun(3), NewSequenceSource())
	if len(out.Eliminated) != 0 {
		t.Fatalf("single team should be a no-op, got %v", out.Eliminated)
	}
}

func TestMarbles_BetrayalDecidesVictim(t *testing.T) {
	alive := []Competitor{
		comp(1, Stats{Betrayal: 0.4}),
		comp(2, Stats{Betrayal: 0.9}),
		comp(3, Stats{Betrayal: 0.4}),
		comp(4, Stats{Betrayal: 0.1}),
		comp(5, Stats{Betrayal: 0.5}),
	}
	// Pair (1,2): 0.3 < 0.4, #1 betrays, #2 out.
	// Pair (3,4): 0.4 is not < 0.4, #4 betrays, #3 out.
	// #5 is unpaired and draws nothing.
	src := NewSequenceSource(0.3, 0.4)
	out := Marbles(alive, src)
	if diff := cmp.Diff([]int{2, 3}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
	if src.Used() != 2 {
		t.Fatalf("expected one draw per alliance, got %d", src.Used())
	}
}

func TestMarbles_HalvesEvenField(t *testing.T) {
	alive := make([]Competitor, 0, 20)
	src := NewSeededSource(11)
	for i := 1; i <= 20; i++ {
		alive = append(alive, comp(i, GenerateStats(src)))
	}
	out := Marbles(alive, src)
	if len(out.Eliminated) != 10 {
		t.Fatalf("expected 10 eliminated, got %d", len(out.Eliminated))
	}
	for k, id := range out.Eliminated {
		a, b := alive[2*k].ID, alive[2*k+1].ID
		if id != a && id != b {
			t.Fatalf("alliance %d: eliminated #%d is not a member of (%d,%d)", k, id, a, b)
		}
	}
}

func TestFinal_HigherPowerWins(t *testing.T) {
	alive := []Competitor{
		comp(1, Stats{Strength: 0.5, Intelligence: 0.5}),
		comp(2, Stats{Strength: 0.2, Intelligence: 0.2}),
	}
	src := NewSequenceSource(0.1, 0.9)
	out := Final(alive, src)
	// 1.1 vs 1.3: #1 loses.
	if diff := cmp.Diff([]int{1}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
	if src.Used() != 2 {
		t.Fatalf("expected two draws, got %d", src.Used())
	}
}

func TestFinal_TieEliminatesSecond(t *testing.T) {
	st := Stats{Strength: 0.25, Intelligence: 0.25}
	alive := []Competitor{comp(1, st), comp(2, st)}
	out := Final(alive, NewSequenceSource(0.5, 0.5))
	if diff := cmp.Diff([]int{2}, out.Eliminated); diff != "" {
		t.Fatalf("eliminated mismatch (-want +got):\n%s", diff)
	}
}

func TestFinal_NotHeadToHead(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		src := NewSequenceSource(0.5)
		out := Final(aliveRun(n), src)
		if len(out.Eliminated) != 0 {
			t.Fatalf("n=%d: expected no eliminations, got %v", n, out.Eliminated)
		}
		if len(out.Warnings) != 1 || out.Warnings[0].Kind != WarningFinalNotHeadToHead {
			t.Fatalf("n=%d: expected final_not_head_to_head warning, got %+v", n, out.Warnings)
		}
		if src.Used() != 0 {
			t.Fatalf("n=%d: expected no draws, got %d", n, src.Used())
		}
	}
}

func TestRuleFor(t *testing.T) {
	for s := StageLobby; s <= StageCompleted; s++ {
		_, ok := RuleFor(s)
		if ok != s.IsRound() {
			t.Fatalf("%s: RuleFor ok=%v, IsRound=%v", s, ok, s.IsRound())
		}
	}
}

func TestParseStage_RoundTrip(t *testing.T) {
	for s := StageLobby; s <= StageCompleted; s++ {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Fatalf("%s: got %s err=%v", s, got, err)
		}
	}
	if _, err := ParseStage("squid"); err == nil {
		t.Fatalf("expected error for unknown stage")
	}
}

func TestStage_Title(t *testing.T) {
	if got := StageFinal.Title(); got != "Final 1v1 Squid Game" {
		t.Fatalf("unexpected final title %q", got)
	}
	if got := StageRedLightGreenLight.Title(); got != "Red Light, Green Light" {
		t.Fatalf("unexpected title %q", got)
	}
}
