package report

import (
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// RunReport captures one finished tournament.
type RunReport struct {
	Index   int
	Seed    int64
	RunID   string
	Steps   []tournament.Step
	Ranking []tournament.Competitor
}

// Survivors returns the competitors still alive at the end.
func (r RunReport) Survivors() []tournament.Competitor {
	var out []tournament.Competitor
	for _, c := range r.Ranking {
		if !c.Alive {
			break
		}
		out = append(out, c)
	}
	return out
}

// Champion returns the sole survivor, if the run produced exactly one.
func (r RunReport) Champion() (tournament.Competitor, bool) {
	s := r.Survivors()
	if len(s) != 1 {
		return tournament.Competitor{}, false
	}
	return s[0], true
}

// CollectRun runs t to completion and captures the result. It is an error to
// pass a tournament that has already completed.
func CollectRun(index int, t *tournament.Tournament) (RunReport, error) {
	for !t.IsCompleted() {
		if _, err := t.Advance(); err != nil {
			return RunReport{}, err
		}
	}
	ranking, err := t.Ranking()
	if err != nil {
		return RunReport{}, err
	}
	seed, _ := t.Seed()
	return RunReport{
		Index:   index,
		Seed:    seed,
		RunID:   t.RunID(),
		Steps:   t.History(),
		Ranking: ranking,
	}, nil
}

// RoundAggregate averages one round across runs.
type RoundAggregate struct {
	Round          tournament.Stage
	Samples        int
	AvgAliveBefore float64
	AvgAliveAfter  float64
	AvgEliminated  float64
}

// Aggregate summarises many runs.
type Aggregate struct {
	Runs      int
	Rounds    []RoundAggregate
	Warnings  map[tournament.WarningKind]int
	Decisive  int // runs with exactly one survivor
	AvgFinal  float64
	Champions tournament.Stats // mean stats of decisive-run champions
}

// Reporter accumulates run reports.
type Reporter struct {
	runs []RunReport
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Add records a run.
func (r *Reporter) Add(run RunReport) {
	r.runs = append(r.runs, run)
}

// Runs returns every recorded run.
func (r *Reporter) Runs() []RunReport {
	out := make([]RunReport, len(r.runs))
	copy(out, r.runs)
	return out
}

// Aggregate computes per-round averages, warning totals and champion stats.
func (r *Reporter) Aggregate() Aggregate {
	agg := Aggregate{
		Runs:     len(r.runs),
		Warnings: map[tournament.WarningKind]int{},
	}
	type sums struct {
		n                     int
		before, after, elimed int
	}
	perRound := map[tournament.Stage]*sums{}
	finalSurvivors := 0

	for _, run := range r.runs {
		for _, step := range run.Steps {
			s, ok := perRound[step.Round]
			if !ok {
				s = &sums{}
				perRound[step.Round] = s
			}
			s.n++
			s.before += step.AliveBefore
			s.after += step.AliveAfter
			s.elimed += len(step.Eliminated)
			for _, w := range step.Warnings {
				agg.Warnings[w.Kind]++
			}
		}
		finalSurvivors += len(run.Survivors())
		if champ, ok := run.Champion(); ok {
			agg.Decisive++
			agg.Champions.Strength += champ.Stats.Strength
			agg.Champions.Agility += champ.Stats.Agility
			agg.Champions.Luck += champ.Stats.Luck
			agg.Champions.Intelligence += champ.Stats.Intelligence
			agg.Champions.Trust += champ.Stats.Trust
			agg.Champions.Betrayal += champ.Stats.Betrayal
		}
	}

	for round := tournament.StageRedLightGreenLight; round <= tournament.StageFinal; round++ {
		s, ok := perRound[round]
		if !ok {
			continue
		}
		n := float64(s.n)
		agg.Rounds = append(agg.Rounds, RoundAggregate{
			Round:          round,
			Samples:        s.n,
			AvgAliveBefore: float64(s.before) / n,
			AvgAliveAfter:  float64(s.after) / n,
			AvgEliminated:  float64(s.elimed) / n,
		})
	}
	if agg.Runs > 0 {
		agg.AvgFinal = float64(finalSurvivors) / float64(agg.Runs)
	}
	if agg.Decisive > 0 {
		d := float64(agg.Decisive)
		agg.Champions.Strength /= d
		agg.Champions.Agility /= d
		agg.Champions.Luck /= d
		agg.Champions.Intelligence /= d
		agg.Champions.Trust /= d
		agg.Champions.Betrayal /= d
	}
	return agg
}
