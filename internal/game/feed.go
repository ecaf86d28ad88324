package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Squid-Sense/internal/report"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

const (
	panelWidth     = 360
	feedMaxEntries = 60
	lineHeight     = 14
)

// FeedKind colours a feed entry.
type FeedKind int

const (
	FeedRound FeedKind = iota
	FeedElimination
	FeedWarning
	FeedStatus
)

// FeedEntry is a single line in the round feed.
type FeedEntry struct {
	Step    int
	Kind    FeedKind
	Message string
}

// RoundFeed is a ring buffer of tournament events rendered under the survivor
// panel.
type RoundFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewRoundFeed creates a feed with a fixed capacity.
func NewRoundFeed() *RoundFeed {
	return &RoundFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *RoundFeed) Add(step int, kind FeedKind, msg string) {
	f.entries[f.head] = FeedEntry{
		Step:    step,
		Kind:    kind,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddStep records the announcement, eliminations and warnings of one step.
// lookup resolves eliminated ids to names; unknown ids print as labels only.
func (f *RoundFeed) AddStep(step tournament.Step, lookup func(id int) (tournament.Competitor, bool)) {
	f.Add(step.Number, FeedRound, report.RoundAnnouncement(step.Round))
	for _, id := range step.Eliminated {
		msg := fmt.Sprintf("#%d eliminated", id)
		if c, ok := lookup(id); ok {
			msg = fmt.Sprintf("%s %s eliminated", c.Label(), c.Name)
		}
		f.Add(step.Number, FeedElimination, msg)
	}
	for _, w := range step.Warnings {
		f.Add(step.Number, FeedWarning, "warning: "+w.String())
	}
}

// Reset empties the feed.
func (f *RoundFeed) Reset() {
	f.head = 0
	f.count = 0
}

// Len returns the number of buffered entries.
func (f *RoundFeed) Len() int {
	return f.count
}

// Recent returns entries in chronological order (oldest first).
func (f *RoundFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func (k FeedKind) colour() color.RGBA {
	switch k {
	case FeedElimination:
		return color.RGBA{R: 210, G: 60, B: 70, A: 255}
	case FeedWarning:
		return color.RGBA{R: 230, G: 170, B: 40, A: 255}
	case FeedStatus:
		return color.RGBA{R: 80, G: 140, B: 220, A: 255}
	default:
		return color.RGBA{R: 60, G: 200, B: 120, A: 255}
	}
}

// Draw renders the feed in the panel column between top and top+height.
func (f *RoundFeed) Draw(screen *ebiten.Image, panelX, top, height int) {
	vector.FillRect(screen, float32(panelX), float32(top), float32(panelWidth), 16, color.RGBA{R: 30, G: 18, B: 26, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ROUND FEED", panelX+8, top+1)
	vector.StrokeLine(screen, float32(panelX), float32(top+16), float32(panelX+panelWidth), float32(top+16), 1.0, color.RGBA{R: 90, G: 50, B: 70, A: 200}, false)

	entries := f.Recent()

	// Newest at the bottom.
	maxVisible := (height - 24) / lineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := top + 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(panelWidth-4), float32(lineHeight), color.RGBA{R: 40, G: 26, B: 36, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, e.Kind.colour(), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%2d %s", e.Step, e.Message), panelX+12, y)
		y += lineHeight
	}
}
