package tournament

// comp builds an alive competitor with the given stats.
func comp(id int, st Stats) Competitor {
	return Competitor{ID: id, Name: "test", Alive: true, Stats: st}
}

// stats6 builds Stats from strength, agility, luck, intelligence, trust, betrayal.
func stats6(v [6]float64) Stats {
	return Stats{
		Strength:     v[0],
		Agility:      v[1],
		Luck:         v[2],
		Intelligence: v[3],
		Trust:        v[4],
		Betrayal:     v[5],
	}
}

// populationOf installs competitors directly, bypassing Create.
func populationOf(cs ...Competitor) *Population {
	p := NewPopulation(DefaultFieldWidth, DefaultFieldHeight)
	p.replace(cs)
	return p
}

// creationDraws returns the draws Create consumes for the given stats when
// names come from FixedName: x, y, then the six stats.
func creationDraws(stats [][6]float64) []float64 {
	var draws []float64
	for _, st := range stats {
		draws = append(draws, 0.5, 0.5)
		draws = append(draws, st[:]...)
	}
	return draws
}

func ids(cs []Competitor) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
