package game

import "time"

// pacer decides when the viewer auto-advances. It counts simulated time so a
// paused or slow window never catches up with a burst of rounds.
type pacer struct {
	delay   time.Duration
	elapsed time.Duration
	paused  bool
}

func newPacer(delay time.Duration, auto bool) pacer {
	return pacer{delay: delay, paused: !auto}
}

// tick adds dt and reports whether a round is due. At most one round is due
// per tick.
func (p *pacer) tick(dt time.Duration) bool {
	if p.paused {
		return false
	}
	p.elapsed += dt
	if p.elapsed < p.delay {
		return false
	}
	p.elapsed = 0
	return true
}

// reset restarts the countdown, e.g. after a manual advance.
func (p *pacer) reset() {
	p.elapsed = 0
}

func (p *pacer) toggle() {
	p.paused = !p.paused
}

// remaining is the time left until the next automatic round.
func (p *pacer) remaining() time.Duration {
	if p.elapsed >= p.delay {
		return 0
	}
	return p.delay - p.elapsed
}

// banner is a timed message: the round announcement or a save/load status.
type banner struct {
	text string
	left time.Duration
}

func (b *banner) show(text string, d time.Duration) {
	b.text = text
	b.left = d
}

func (b *banner) tick(dt time.Duration) {
	if b.left <= 0 {
		return
	}
	b.left -= dt
	if b.left <= 0 {
		b.text = ""
		b.left = 0
	}
}

func (b *banner) visible() bool {
	return b.text != ""
}
