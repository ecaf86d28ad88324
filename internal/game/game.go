// Package game is the ebiten viewer: the field of competitors, the survivor
// panel, the round feed, the profile inspector and the final leaderboard.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Squid-Sense/internal/config"
	"github.com/Garsondee/Squid-Sense/internal/persist"
	"github.com/Garsondee/Squid-Sense/internal/report"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

// dotRadius is the drawn size of a competitor.
const dotRadius = 3

// statusDuration is how long save/load/copy messages stay on screen.
const statusDuration = 2 * time.Second

var (
	aliveColour = color.RGBA{R: 60, G: 200, B: 120, A: 255}
	deadColour  = color.RGBA{R: 200, G: 40, B: 60, A: 255}
	pinkColour  = color.RGBA{R: 237, G: 27, B: 118, A: 255}
)

// Viewer implements ebiten.Game over a tournament.
type Viewer struct {
	width  int
	height int
	fieldW int
	fieldH int
	offX   int
	offY   int

	ctx        context.Context
	t          *tournament.Tournament
	bridge     *persist.Bridge
	logger     *slog.Logger
	population int

	feed      *RoundFeed
	pacer     pacer
	announce  banner
	status    banner
	showHUD   bool
	inspector Inspector

	survivorScroll int

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	// copyText writes to the system clipboard; replaced in tests.
	copyText func(string) error

	face    text.Face
	inspBuf *ebiten.Image
}

// New builds a viewer for t. bridge may be nil, in which case F5/F9 report
// that saving is unavailable.
func New(ctx context.Context, t *tournament.Tournament, bridge *persist.Bridge, cfg config.Config, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fieldW := int(cfg.FieldWidth)
	fieldH := int(cfg.FieldHeight)
	v := &Viewer{
		width:      borderWidth + fieldW + borderWidth + panelWidth,
		height:     borderWidth + fieldH + borderWidth,
		fieldW:     fieldW,
		fieldH:     fieldH,
		offX:       borderWidth,
		offY:       borderWidth,
		ctx:        ctx,
		t:          t,
		bridge:     bridge,
		logger:     logger,
		population: cfg.Population,
		feed:       NewRoundFeed(),
		pacer:      newPacer(cfg.RoundDelay, cfg.AutoAdvance),
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		copyText:   clipboard.WriteAll,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
	v.feed.Add(0, FeedStatus, fmt.Sprintf("%d competitors in the lobby", t.AliveCount()))
	return v
}

// Size returns the window size the viewer lays out to.
func (v *Viewer) Size() (int, int) {
	return v.width, v.height
}

func (v *Viewer) Update() error {
	v.handleInput()

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := time.Second / time.Duration(tps)
	v.announce.tick(dt)
	v.status.tick(dt)
	if !v.t.IsCompleted() && v.pacer.tick(dt) {
		v.advance()
	}
	return nil
}

// advance plays one round and reports it in the feed and the banner.
func (v *Viewer) advance() {
	step, err := v.t.Advance()
	if errors.Is(err, tournament.ErrAlreadyCompleted) {
		return
	}
	if err != nil {
		v.logger.Error("advance failed", slog.String("run_id", v.t.RunID()), slog.Any("error", err))
		v.setStatus("Advance failed!")
		return
	}
	v.pacer.reset()
	v.feed.AddStep(step, v.t.ByID)
	v.announce.show(report.RoundAnnouncement(step.Round), v.pacer.delay)
	if v.survivorScroll > 0 && v.survivorScroll >= step.AliveAfter {
		v.survivorScroll = 0
	}
}

// restart replaces the field with a fresh population.
func (v *Viewer) restart() {
	if err := v.t.Restart(v.population); err != nil {
		v.logger.Error("restart failed", slog.Any("error", err))
		v.setStatus("Restart failed!")
		return
	}
	v.resetView()
	v.feed.Add(0, FeedStatus, fmt.Sprintf("%d competitors in the lobby", v.t.AliveCount()))
	v.setStatus(report.MsgRestart)
}

func (v *Viewer) save() {
	if v.bridge == nil {
		v.setStatus("Saving unavailable")
		return
	}
	if err := v.bridge.Save(v.ctx, v.t); err != nil {
		v.logger.Error("save failed", slog.String("run_id", v.t.RunID()), slog.Any("error", err))
		v.setStatus("Save failed!")
		return
	}
	v.setStatus(report.MsgSaved)
}

func (v *Viewer) load() {
	if v.bridge == nil {
		v.setStatus("Saving unavailable")
		return
	}
	err := v.bridge.Load(v.ctx, v.t)
	switch {
	case errors.Is(err, persist.ErrNoSave):
		v.setStatus(report.MsgNoSave)
		return
	case err != nil:
		v.logger.Error("load failed", slog.Any("error", err))
		v.setStatus("Load failed!")
		return
	}
	v.resetView()
	for _, step := range v.t.History() {
		v.feed.AddStep(step, v.t.ByID)
	}
	v.setStatus(report.MsgLoaded)
}

func (v *Viewer) resetView() {
	v.feed.Reset()
	v.inspector.Clear()
	v.announce.show("", 0)
	v.survivorScroll = 0
	v.pacer.reset()
}

func (v *Viewer) setStatus(msg string) {
	v.status.show(msg, statusDuration)
	v.feed.Add(len(v.t.History()), FeedStatus, msg)
}

// pressed reports a key going down this frame and records it for the next.
func (v *Viewer) pressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !v.prevKeys[k]
}

func (v *Viewer) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	if v.pressed(currentKeys, ebiten.KeyN) {
		v.advance()
	}
	if v.pressed(currentKeys, ebiten.KeyP) {
		v.pacer.toggle()
	}
	if v.pressed(currentKeys, ebiten.KeyR) {
		v.restart()
	}
	if v.pressed(currentKeys, ebiten.KeyF5) {
		v.save()
	}
	if v.pressed(currentKeys, ebiten.KeyF9) {
		v.load()
	}
	if v.pressed(currentKeys, ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if v.pressed(currentKeys, ebiten.KeyC) {
		if err := v.copyProfile(); err != nil {
			v.logger.Warn("clipboard write failed", slog.Any("error", err))
			v.setStatus("Copy failed!")
		}
	}
	if v.pressed(currentKeys, ebiten.KeyEscape) {
		v.inspector.Clear()
	}

	// Survivor panel scroll.
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.scrollSurvivors(-int(wy) * 3)
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !v.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			v.handleInspectorClick(mx, my)
		}
	}
	v.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	v.prevKeys = currentKeys
}

func (v *Viewer) scrollSurvivors(delta int) {
	maxScroll := v.t.AliveCount() - v.survivorRows()
	if maxScroll < 0 {
		maxScroll = 0
	}
	v.survivorScroll = clamp(v.survivorScroll+delta, 0, maxScroll)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 10, B: 14, A: 255})

	ox := float32(v.offX)
	oy := float32(v.offY)
	fw := float32(v.fieldW)
	fh := float32(v.fieldH)
	vector.FillRect(screen, ox, oy, fw, fh, color.RGBA{R: 22, G: 18, B: 22, A: 255}, false)
	drawGridOffset(screen, v.offX, v.offY, v.fieldW, v.fieldH, 50, color.RGBA{R: 34, G: 28, B: 34, A: 255})
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, pinkColour, false)

	for _, c := range v.t.Competitors() {
		col := aliveColour
		if !c.Alive {
			col = deadColour
		}
		vector.FillCircle(screen, ox+float32(c.X), oy+float32(c.Y), dotRadius, col, true)
	}
	if c, ok := v.inspected(); ok {
		vector.StrokeCircle(screen, ox+float32(c.X), oy+float32(c.Y), dotRadius+4, 1.5, pinkColour, true)
	}

	panelX := v.panelX()
	vector.FillRect(screen, float32(panelX), 0, panelWidth, float32(v.height), color.RGBA{R: 12, G: 8, B: 12, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(v.height), 1.0, color.RGBA{R: 90, G: 50, B: 70, A: 255}, false)
	v.drawSurvivors(screen)
	feedTop := v.survivorTop() + v.survivorRows()*lineHeight + 8
	v.feed.Draw(screen, panelX, feedTop, v.height-feedTop)

	if v.t.IsCompleted() {
		v.drawLeaderboard(screen)
	} else if v.announce.visible() {
		v.drawCentred(screen, v.announce.text, v.offY+v.fieldH/2-20, 2, pinkColour)
	}
	if v.status.visible() {
		v.drawCentred(screen, v.status.text, v.offY+8, 1, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	if v.showHUD {
		v.drawHUD(screen)
	}
	v.drawInspector(screen)
}

func (v *Viewer) drawSurvivors(screen *ebiten.Image) {
	panelX := v.panelX()
	vector.FillRect(screen, float32(panelX), 0, panelWidth, 16, color.RGBA{R: 30, G: 18, B: 26, A: 255}, false)
	alive := v.t.AliveSubset()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SURVIVORS (%d)", len(alive)), panelX+8, 1)

	rows := v.survivorRows()
	start := clamp(v.survivorScroll, 0, len(alive))
	end := min(start+rows, len(alive))
	selected, hasSel := v.inspector.Selected()
	y := v.survivorTop()
	for _, c := range alive[start:end] {
		if hasSel && c.ID == selected {
			vector.FillRect(screen, float32(panelX+2), float32(y), panelWidth-4, lineHeight, color.RGBA{R: 60, G: 24, B: 44, A: 200}, false)
		}
		ebitenutil.DebugPrintAt(screen, report.SurvivorLine(c), panelX+6, y)
		y += lineHeight
	}
	if more := len(alive) - end; more > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("... %d more (scroll)", more), panelX+6, y)
	}
}

func (v *Viewer) drawLeaderboard(screen *ebiten.Image) {
	ranking, err := v.t.Ranking()
	if err != nil {
		return
	}
	v.drawCentred(screen, "LEADERBOARD", v.offY+24, 2, pinkColour)

	lines := report.Leaderboard(ranking)
	maxRows := max((v.fieldH-80)/lineHeight, 2)
	if len(lines) > maxRows {
		lines = append(lines[:maxRows-1:maxRows-1], fmt.Sprintf("... and %d more", len(ranking)-maxRows+1))
	}
	y := float64(v.offY + 64)
	for i, line := range lines {
		col := color.RGBA{R: 160, G: 160, B: 170, A: 255}
		if i < len(ranking) && ranking[i].Alive {
			col = aliveColour
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(v.offX+40), y)
		op.ColorScale.ScaleWithColor(col)
		text.Draw(screen, fmt.Sprintf("%3d. %s", i+1, line), v.face, op)
		y += lineHeight
	}
}

// drawCentred draws msg horizontally centred over the field.
func (v *Viewer) drawCentred(screen *ebiten.Image, msg string, y int, scale float64, col color.Color) {
	w, _ := text.Measure(msg, v.face, lineHeight)
	x := float64(v.offX) + (float64(v.fieldW)-w*scale)/2
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, msg, v.face, op)
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	auto := fmt.Sprintf("auto in %.1fs", v.pacer.remaining().Seconds())
	if v.pacer.paused {
		auto = "PAUSED"
	}
	if v.t.IsCompleted() {
		auto = "COMPLETED"
	}
	lines := []string{
		fmt.Sprintf("stage: %s  alive: %d  %s", v.t.CurrentState().Title(), v.t.AliveCount(), auto),
		"N=next  P=pause  R=restart  F5=save  F9=load",
		"click=inspect  C=copy  H=hide",
	}
	const charW = 6
	const padX, padY = 5, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineHeight + padY*2)
	bx := float32(v.offX + 4)
	by := float32(v.offY+v.fieldH) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 8, G: 6, B: 8, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 90, G: 50, B: 70, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+padX, int(by)+padY+i*lineHeight)
	}
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	ox := float32(offX)
	oy := float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

// panelX is the left edge of the survivor/feed column.
func (v *Viewer) panelX() int {
	return v.offX + v.fieldW + v.offX
}

func (v *Viewer) survivorTop() int {
	return 20
}

// survivorRows is how many survivor lines fit in the top half of the panel.
func (v *Viewer) survivorRows() int {
	return max((v.height/2-v.survivorTop())/lineHeight, 1)
}

// survivorRowAt maps a screen y onto a visible survivor row.
func survivorRowAt(y, top, rows int) (int, bool) {
	if y < top {
		return 0, false
	}
	row := (y - top) / lineHeight
	if row >= rows {
		return 0, false
	}
	return row, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
