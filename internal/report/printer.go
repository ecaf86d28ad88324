package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// Printer writes run reports to a terminal.
type Printer struct {
	w       io.Writer
	top     int
	heading lipgloss.Style
	alive   lipgloss.Style
	dead    lipgloss.Style
	warn    lipgloss.Style
	faint   lipgloss.Style
}

// NewPrinter returns a printer that shows the first top ranking entries.
// Colour is enabled only when w is a colour-capable terminal.
func NewPrinter(w io.Writer, top int) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		top:     top,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		alive:   r.NewStyle().Foreground(lipgloss.Color("42")),
		dead:    r.NewStyle().Foreground(lipgloss.Color("196")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		faint:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Header prints the report banner.
func (p *Printer) Header(runs, population int, seedBase, seedStep int64) {
	fmt.Fprintln(p.w, p.heading.Render("=== Squid Tournament Report ==="))
	fmt.Fprintf(p.w, "runs=%d population=%d seed_base=%d seed_step=%d\n\n", runs, population, seedBase, seedStep)
}

// Run prints one run: every round, any warnings, and the top of the ranking.
func (p *Printer) Run(run RunReport) {
	fmt.Fprintln(p.w, p.heading.Render(fmt.Sprintf("--- Run %d (seed=%d) ---", run.Index, run.Seed)))
	fmt.Fprintln(p.w, p.faint.Render("run_id="+run.RunID))
	for _, step := range run.Steps {
		fmt.Fprintf(p.w, "  %s\n", StepSummary(step))
		for _, w := range step.Warnings {
			fmt.Fprintf(p.w, "    %s\n", p.warn.Render("warning: "+w.String()))
		}
	}
	p.ranking(run.Ranking)
	fmt.Fprintln(p.w)
}

// Snapshot prints a stored snapshot.
func (p *Printer) Snapshot(s tournament.Snapshot) {
	alive := 0
	for _, c := range s.Competitors {
		if c.Alive {
			alive++
		}
	}
	fmt.Fprintln(p.w, p.heading.Render("=== Saved Tournament ==="))
	fmt.Fprintf(p.w, "run_id=%s stage=%s population=%d alive=%d\n",
		s.RunID, s.Stage, len(s.Competitors), alive)
	ranked := make([]tournament.Competitor, len(s.Competitors))
	copy(ranked, s.Competitors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Alive && !ranked[j].Alive
	})
	p.ranking(ranked)
}

func (p *Printer) ranking(ranking []tournament.Competitor) {
	n := len(ranking)
	if p.top > 0 && p.top < n {
		n = p.top
	}
	fmt.Fprintf(p.w, "  ranking (top %d of %d):\n", n, len(ranking))
	for i, c := range ranking[:n] {
		style := p.dead
		if c.Alive {
			style = p.alive
		}
		fmt.Fprintf(p.w, "    %3d. %s\n", i+1, style.Render(LeaderboardLine(c)))
	}
}

// Aggregate prints the cross-run summary.
func (p *Printer) Aggregate(agg Aggregate) {
	fmt.Fprintln(p.w, p.heading.Render("=== Aggregate ==="))
	fmt.Fprintf(p.w, "runs=%d decisive=%d avg_final_survivors=%.1f\n", agg.Runs, agg.Decisive, agg.AvgFinal)
	for _, r := range agg.Rounds {
		fmt.Fprintf(p.w, "  %-24s alive %.1f -> %.1f  eliminated=%.1f\n",
			r.Round.Title(), r.AvgAliveBefore, r.AvgAliveAfter, r.AvgEliminated)
	}
	if len(agg.Warnings) > 0 {
		kinds := make([]string, 0, len(agg.Warnings))
		for k, n := range agg.Warnings {
			kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
		}
		sort.Strings(kinds)
		fmt.Fprintln(p.w, p.warn.Render("  warnings: "+strings.Join(kinds, " ")))
	}
	if agg.Decisive > 0 {
		c := agg.Champions
		fmt.Fprintf(p.w, "  champion_avg: STR=%.2f AGI=%.2f LCK=%.2f INT=%.2f Trust=%.2f Betrayal=%.2f\n",
			c.Strength, c.Agility, c.Luck, c.Intelligence, c.Trust, c.Betrayal)
	}
}
