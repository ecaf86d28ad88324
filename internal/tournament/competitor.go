package tournament

import "fmt"

// Competitor is one participant. Values handed out by Population and
// Tournament are copies; mutating them has no effect on the store.
type Competitor struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alive bool    `json:"alive"`
	Stats Stats   `json:"stats"`
}

// Label returns the short display tag, e.g. "#42".
func (c Competitor) Label() string {
	return fmt.Sprintf("#%d", c.ID)
}

// NameGenerator produces a display name, drawing from src as needed.
type NameGenerator func(src Source) string

var (
	firstNames = []string{"Lee", "Kim", "Park", "Choi", "Song", "Shin"}
	lastNames  = []string{"Ji-hoon", "Min-su", "Yeon", "Tae-hyun", "Ha-eun", "Seo-jun"}
)

// DefaultNames picks "<first> <last>" using two draws.
func DefaultNames(src Source) string {
	first := firstNames[pick(src, len(firstNames))]
	last := lastNames[pick(src, len(lastNames))]
	return first + " " + last
}

// FixedName returns a generator that never draws and always yields name.
func FixedName(name string) NameGenerator {
	return func(Source) string { return name }
}

func pick(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
