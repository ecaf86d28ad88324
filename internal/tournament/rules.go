package tournament

import "fmt"

// Stage is a tournament state. Rounds run in declaration order.
type Stage int

const (
	StageLobby Stage = iota
	StageRedLightGreenLight
	StageHoneycomb
	StageTugOfWar
	StageMarbles
	StageGlassBridge
	StageFinal
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StageLobby:
		return "lobby"
	case StageRedLightGreenLight:
		return "red_light_green_light"
	case StageHoneycomb:
		return "honeycomb"
	case StageTugOfWar:
		return "tug_of_war"
	case StageMarbles:
		return "marbles"
	case StageGlassBridge:
		return "glass_bridge"
	case StageFinal:
		return "final"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Title is the announcement shown when the round finishes.
func (s Stage) Title() string {
	switch s {
	case StageLobby:
		return "Lobby"
	case StageRedLightGreenLight:
		return "Red Light, Green Light"
	case StageHoneycomb:
		return "Honeycomb"
	case StageTugOfWar:
		return "Tug of War"
	case StageMarbles:
		return "Marbles"
	case StageGlassBridge:
		return "Glass Bridge"
	case StageFinal:
		return "Final 1v1 Squid Game"
	case StageCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// IsRound reports whether the stage has an elimination rule.
func (s Stage) IsRound() bool {
	return s >= StageRedLightGreenLight && s <= StageFinal
}

// ParseStage is the inverse of Stage.String.
func ParseStage(name string) (Stage, error) {
	for s := StageLobby; s <= StageCompleted; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return StageLobby, fmt.Errorf("unknown stage %q", name)
}

// WarningKind names a non-fatal degenerate condition.
type WarningKind int

const (
	// WarningEmptyField: a round started with nobody alive.
	WarningEmptyField WarningKind = iota + 1
	// WarningFinalNotHeadToHead: the final started without exactly two alive.
	WarningFinalNotHeadToHead
)

func (k WarningKind) String() string {
	switch k {
	case WarningEmptyField:
		return "empty_field"
	case WarningFinalNotHeadToHead:
		return "final_not_head_to_head"
	default:
		return "unknown"
	}
}

// Warning is surfaced to the orchestration layer so it can decide whether to
// stop early. It never aborts a round.
type Warning struct {
	Kind   WarningKind
	Round  Stage
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Round, w.Kind, w.Detail)
}

// Outcome is what a rule decided for one round.
type Outcome struct {
	Eliminated []int
	Warnings   []Warning
}

// Rule decides eliminations for one round from the alive subset at the start
// of the round. Rules must not retain alive or mutate it.
type Rule func(alive []Competitor, src Source) Outcome

// RuleFor returns the elimination rule of a round stage.
func RuleFor(s Stage) (Rule, bool) {
	switch s {
	case StageRedLightGreenLight:
		return RedLightGreenLight, true
	case StageHoneycomb:
		return Honeycomb, true
	case StageTugOfWar:
		return TugOfWar, true
	case StageMarbles:
		return Marbles, true
	case StageGlassBridge:
		return GlassBridge, true
	case StageFinal:
		return Final, true
	default:
		return nil, false
	}
}

// survivalRound eliminates each competitor whose draw exceeds threshold(c).
// One draw per competitor, in alive order.
func survivalRound(alive []Competitor, src Source, threshold func(Competitor) float64) Outcome {
	var out Outcome
	for _, c := range alive {
		if src.Float64() > threshold(c) {
			out.Eliminated = append(out.Eliminated, c.ID)
		}
	}
	return out
}

// RedLightGreenLight: survive when draw <= (agility+luck)/2.
func RedLightGreenLight(alive []Competitor, src Source) Outcome {
	return survivalRound(alive, src, func(c Competitor) float64 { return c.Stats.Reflex() })
}

// Honeycomb: survive when draw <= intelligence.
func Honeycomb(alive []Competitor, src Source) Outcome {
	return survivalRound(alive, src, func(c Competitor) float64 { return c.Stats.Intelligence })
}

// GlassBridge: survive when draw <= luck.
func GlassBridge(alive []Competitor, src Source) Outcome {
	return survivalRound(alive, src, func(c Competitor) float64 { return c.Stats.Luck })
}

// TugOfWar pits team 2k against team 2k+1. The team with the strictly lower
// strength sum loses every member; a tie goes to the earlier team. A trailing
// unpaired team is untouched. No randomness is consumed.
func TugOfWar(alive []Competitor, _ Source) Outcome {
	var out Outcome
	teams := FormTeams(alive)
	for i := 0; i+1 < len(teams); i += 2 {
		a, b := teams[i], teams[i+1]
		loser := b
		if a.Strength() < b.Strength() {
			loser = a
		}
		out.Eliminated = append(out.Eliminated, loser.IDs()...)
	}
	return out
}

// Marbles re-pairs the alive subset and, per alliance, draws once: below the
// first member's betrayal the first member betrays, otherwise the second does.
// The betrayed member is eliminated. Alliances whose members are no longer
// alive in the subset are skipped.
func Marbles(alive []Competitor, src Source) Outcome {
	var out Outcome
	byID := make(map[int]Competitor, len(alive))
	for _, c := range alive {
		byID[c.ID] = c
	}
	for _, pair := range FormAlliances(alive) {
		first, ok1 := byID[pair.First]
		second, ok2 := byID[pair.Second]
		if !ok1 || !ok2 {
			continue
		}
		victim := first
		if src.Float64() < first.Stats.Betrayal {
			victim = second
		}
		out.Eliminated = append(out.Eliminated, victim.ID)
	}
	return out
}

// Final runs only with exactly two alive. Each draws once (first, then
// second); power = strength + intelligence + draw. The lower power is
// eliminated and a tie eliminates the second. Any other alive count is a
// no-op with a warning.
func Final(alive []Competitor, src Source) Outcome {
	if len(alive) != 2 {
		return Outcome{Warnings: []Warning{{
			Kind:   WarningFinalNotHeadToHead,
			Round:  StageFinal,
			Detail: fmt.Sprintf("%d alive, want 2", len(alive)),
		}}}
	}
	p1, p2 := alive[0], alive[1]
	power1 := p1.Stats.FinalBase() + src.Float64()
	power2 := p2.Stats.FinalBase() + src.Float64()
	loser := p2
	if power1 < power2 {
		loser = p1
	}
	return Outcome{Eliminated: []int{loser.ID}}
}
