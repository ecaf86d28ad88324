package game

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Squid-Sense/internal/report"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// Profile panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13

	// pickRadius is the click radius around a dot, in field units.
	pickRadius = 8.0
)

// Inspector holds the selected competitor. Selection is by id so a restart
// or a load that removes the competitor clears it.
type Inspector struct {
	selectedID int
	selected   bool
}

// Select marks id as the inspected competitor.
func (in *Inspector) Select(id int) {
	in.selectedID = id
	in.selected = true
}

// Clear drops the selection.
func (in *Inspector) Clear() {
	in.selected = false
	in.selectedID = 0
}

// Selected returns the inspected id, if any.
func (in *Inspector) Selected() (int, bool) {
	return in.selectedID, in.selected
}

// pick returns the alive competitor closest to (fx, fy) within radius.
func pick(cs []tournament.Competitor, fx, fy, radius float64) (tournament.Competitor, bool) {
	radius2 := radius * radius
	best2 := radius2
	var hit tournament.Competitor
	found := false
	for _, c := range cs {
		if !c.Alive {
			continue
		}
		dx := c.X - fx
		dy := c.Y - fy
		d2 := dx*dx + dy*dy
		if d2 <= best2 {
			best2 = d2
			hit = c
			found = true
		}
	}
	return hit, found
}

// handleInspectorClick selects whatever is under the cursor: a dot on the
// field or a row of the survivor panel. A click on empty field deselects.
func (v *Viewer) handleInspectorClick(mx, my int) bool {
	if mx >= v.panelX() {
		row, ok := survivorRowAt(my, v.survivorTop(), v.survivorRows())
		if !ok {
			return false
		}
		alive := v.t.AliveSubset()
		idx := row + v.survivorScroll
		if idx >= len(alive) {
			return false
		}
		v.inspector.Select(alive[idx].ID)
		return true
	}

	fx := float64(mx - v.offX)
	fy := float64(my - v.offY)
	if hit, ok := pick(v.t.Competitors(), fx, fy, pickRadius); ok {
		v.inspector.Select(hit.ID)
		return true
	}
	v.inspector.Clear()
	return false
}

// inspected resolves the selection, clearing it if the competitor is gone.
func (v *Viewer) inspected() (tournament.Competitor, bool) {
	id, ok := v.inspector.Selected()
	if !ok {
		return tournament.Competitor{}, false
	}
	c, status := v.t.Lookup(id)
	if status == tournament.LookupUnknown {
		v.inspector.Clear()
		return tournament.Competitor{}, false
	}
	return c, true
}

// copyProfile puts the inspected competitor's profile on the clipboard.
func (v *Viewer) copyProfile() error {
	c, ok := v.inspected()
	if !ok {
		return nil
	}
	if err := v.copyText(report.Profile(c)); err != nil {
		return err
	}
	v.setStatus(report.MsgCopied)
	return nil
}

func (v *Viewer) drawInspector(screen *ebiten.Image) {
	c, ok := v.inspected()
	if !ok {
		return
	}
	if v.inspBuf == nil {
		v.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	v.inspBuf.Clear()

	buf := v.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBorder := color.RGBA{R: 90, G: 50, B: 70, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 18, G: 12, B: 16, A: 235}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx := inspPad
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, "[ "+report.ProfileTitle(c)+" ]", lx, ly)
	ly += inspLineH + 2

	status := "Status: ALIVE"
	statusCol := aliveColour
	if !c.Alive {
		status = "Status: DEAD"
		statusCol = deadColour
	}
	vector.FillRect(buf, float32(lx), float32(ly+4), 4, 4, statusCol, false)
	ebitenutil.DebugPrintAt(buf, status, lx+8, ly)
	ly += inspLineH + 2
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1.0, panelBorder, false)
	ly += 4

	for _, line := range strings.Split(report.ProfileStats(c), "\n") {
		ebitenutil.DebugPrintAt(buf, line, lx, ly)
		ly += inspLineH
	}
	ebitenutil.DebugPrintAt(buf, "[C] copy  [Esc] close", lx, int(bh)-inspLineH-inspPad)

	px := v.panelX() - inspBufW*inspScale - 12
	py := v.height - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
