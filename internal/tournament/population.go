package tournament

import "errors"

// DefaultPopulation is the number of competitors in a standard tournament.
const DefaultPopulation = 456

// Default field dimensions for competitor positions.
const (
	DefaultFieldWidth  = 800.0
	DefaultFieldHeight = 600.0
)

// ErrNegativeCount is returned by Create when asked for fewer than zero competitors.
var ErrNegativeCount = errors.New("population count must be non-negative")

// LookupStatus distinguishes the outcomes of Population.Lookup.
type LookupStatus int

const (
	LookupUnknown LookupStatus = iota
	LookupFound
	LookupDead
)

func (ls LookupStatus) String() string {
	switch ls {
	case LookupFound:
		return "found"
	case LookupDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Population owns every competitor of a run and their liveness. The slice
// order is creation order and never changes.
type Population struct {
	competitors []Competitor
	index       map[int]int // id -> slice index
	width       float64
	height      float64
}

// NewPopulation returns an empty population whose positions span a field of
// width x height.
func NewPopulation(width, height float64) *Population {
	if width <= 0 {
		width = DefaultFieldWidth
	}
	if height <= 0 {
		height = DefaultFieldHeight
	}
	return &Population{index: map[int]int{}, width: width, height: height}
}

// Create discards any prior competitors and builds count new ones with ids
// 1..count. Per competitor the draw order is name, x, y, then stats.
func (p *Population) Create(count int, names NameGenerator, src Source) error {
	if count < 0 {
		return ErrNegativeCount
	}
	if names == nil {
		names = DefaultNames
	}
	p.competitors = make([]Competitor, 0, count)
	p.index = make(map[int]int, count)
	for i := 1; i <= count; i++ {
		c := Competitor{
			ID:    i,
			Name:  names(src),
			X:     src.Float64() * p.width,
			Y:     src.Float64() * p.height,
			Alive: true,
		}
		c.Stats = GenerateStats(src)
		p.index[c.ID] = len(p.competitors)
		p.competitors = append(p.competitors, c)
	}
	return nil
}

// replace installs an already-validated competitor list.
func (p *Population) replace(cs []Competitor) {
	p.competitors = make([]Competitor, len(cs))
	copy(p.competitors, cs)
	p.index = make(map[int]int, len(cs))
	for i, c := range p.competitors {
		p.index[c.ID] = i
	}
}

// Len returns the total number of competitors, alive or not.
func (p *Population) Len() int {
	return len(p.competitors)
}

// All returns a copy of every competitor in creation order.
func (p *Population) All() []Competitor {
	out := make([]Competitor, len(p.competitors))
	copy(out, p.competitors)
	return out
}

// AliveSubset returns the alive competitors in creation order.
func (p *Population) AliveSubset() []Competitor {
	out := make([]Competitor, 0, len(p.competitors))
	for _, c := range p.competitors {
		if c.Alive {
			out = append(out, c)
		}
	}
	return out
}

// AliveCount returns how many competitors are alive.
func (p *Population) AliveCount() int {
	n := 0
	for _, c := range p.competitors {
		if c.Alive {
			n++
		}
	}
	return n
}

// Eliminate marks each listed competitor dead. Unknown and already-dead ids
// are ignored. It returns the ids that actually changed, in argument order.
func (p *Population) Eliminate(ids ...int) []int {
	var flipped []int
	for _, id := range ids {
		i, ok := p.index[id]
		if !ok || !p.competitors[i].Alive {
			continue
		}
		p.competitors[i].Alive = false
		flipped = append(flipped, id)
	}
	return flipped
}

// ByID returns the competitor only if it exists and is alive.
func (p *Population) ByID(id int) (Competitor, bool) {
	c, status := p.Lookup(id)
	return c, status == LookupFound
}

// Lookup returns the competitor and whether it is alive, dead, or unknown.
func (p *Population) Lookup(id int) (Competitor, LookupStatus) {
	i, ok := p.index[id]
	if !ok {
		return Competitor{}, LookupUnknown
	}
	c := p.competitors[i]
	if !c.Alive {
		return c, LookupDead
	}
	return c, LookupFound
}

// Ranking returns a stable partition: alive competitors first, then the
// eliminated ones, each group in creation order.
func (p *Population) Ranking() []Competitor {
	out := make([]Competitor, 0, len(p.competitors))
	for _, c := range p.competitors {
		if c.Alive {
			out = append(out, c)
		}
	}
	for _, c := range p.competitors {
		if !c.Alive {
			out = append(out, c)
		}
	}
	return out
}
