package tournament

// teamSize is the maximum number of members in a Tug of War team.
const teamSize = 4

// Alliance pairs two alive competitors by id. First is the earlier of the two
// in population order; the pair is otherwise unordered.
type Alliance struct {
	First  int
	Second int
}

// Team is a consecutive run of up to four alive competitors.
type Team struct {
	Index   int
	Members []Competitor
}

// Strength is the sum of member strength.
func (t Team) Strength() float64 {
	sum := 0.0
	for _, m := range t.Members {
		sum += m.Stats.Strength
	}
	return sum
}

// IDs returns member ids in team order.
func (t Team) IDs() []int {
	ids := make([]int, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.ID
	}
	return ids
}

// FormAlliances pairs index 2k with 2k+1 of the alive sequence. A trailing
// competitor in an odd-sized sequence is left out. The result depends only on
// the sequence order, so callers must recompute it whenever liveness changes.
func FormAlliances(alive []Competitor) []Alliance {
	out := make([]Alliance, 0, len(alive)/2)
	for i := 0; i+1 < len(alive); i += 2 {
		out = append(out, Alliance{First: alive[i].ID, Second: alive[i+1].ID})
	}
	return out
}

// Unpaired returns the competitor FormAlliances leaves out, if any.
func Unpaired(alive []Competitor) (Competitor, bool) {
	if len(alive)%2 == 0 {
		return Competitor{}, false
	}
	return alive[len(alive)-1], true
}

// FormTeams slices the alive sequence into consecutive runs of four. The last
// team holds the remainder when the count is not a multiple of four. No
// shuffling: team strength is purely a function of population order.
func FormTeams(alive []Competitor) []Team {
	out := make([]Team, 0, (len(alive)+teamSize-1)/teamSize)
	for i := 0; i < len(alive); i += teamSize {
		end := min(i+teamSize, len(alive))
		members := make([]Competitor, end-i)
		copy(members, alive[i:end])
		out = append(out, Team{Index: len(out), Members: members})
	}
	return out
}
