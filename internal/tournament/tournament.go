package tournament

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyCompleted is returned by Advance once the final has been played.
	ErrAlreadyCompleted = errors.New("tournament already completed")
	// ErrNotCompleted is returned by Ranking before the final has been played.
	ErrNotCompleted = errors.New("tournament not completed")
)

// Step describes one Advance call.
type Step struct {
	Number      int   // 1-based
	Round       Stage // round that was played
	State       Stage // state after the round
	Eliminated  []int // ids eliminated by this round, in rule order
	Warnings    []Warning
	AliveBefore int
	AliveAfter  int
}

// Observer is notified after every applied step, while the tournament lock
// is held. Implementations must not call back into the Tournament.
type Observer interface {
	ObserveStep(runID string, step Step)
}

// Tournament sequences the six rounds over a Population. It is safe for
// concurrent use: Advance, Restart and Restore take the write lock, every
// read view takes the read lock and returns copies.
type Tournament struct {
	mu sync.RWMutex

	runID     string
	pop       *Population
	stage     Stage
	src       Source
	names     NameGenerator
	count     int
	width     float64
	height    float64
	logger    *slog.Logger
	observers []Observer
	log       *EventLog
	history   []Step

	seed    int64
	hasSeed bool
}

// Option configures a Tournament during New.
type Option func(*Tournament)

// WithSeed uses a deterministic math/rand source.
func WithSeed(seed int64) Option {
	return func(t *Tournament) {
		t.seed = seed
		t.hasSeed = true
		t.src = NewSeededSource(seed)
	}
}

// WithSource injects the randomness source directly.
func WithSource(src Source) Option {
	return func(t *Tournament) {
		t.src = src
	}
}

// WithPopulation sets the number of competitors created.
func WithPopulation(count int) Option {
	return func(t *Tournament) {
		t.count = count
	}
}

// WithNames replaces the default name generator.
func WithNames(names NameGenerator) Option {
	return func(t *Tournament) {
		t.names = names
	}
}

// WithField sets the dimensions competitor positions are drawn within.
func WithField(width, height float64) Option {
	return func(t *Tournament) {
		t.width = width
		t.height = height
	}
}

// WithLogger sets the structured logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tournament) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver registers a step observer.
func WithObserver(o Observer) Option {
	return func(t *Tournament) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(t *Tournament) {
		t.runID = id
	}
}

// New builds a tournament in the Lobby with a freshly created population.
// Without WithSeed or WithSource the source is seeded from crypto/rand.
func New(opts ...Option) (*Tournament, error) {
	t := &Tournament{
		count:  DefaultPopulation,
		names:  DefaultNames,
		width:  DefaultFieldWidth,
		height: DefaultFieldHeight,
		logger: slog.New(slog.DiscardHandler),
		log:    NewEventLog(),
	}
	for _, o := range opts {
		o(t)
	}
	if t.src == nil {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		t.seed = seed
		t.hasSeed = true
		t.src = NewSeededSource(seed)
	}
	if t.runID == "" {
		t.runID = uuid.NewString()
	}
	t.pop = NewPopulation(t.width, t.height)
	if err := t.pop.Create(t.count, t.names, t.src); err != nil {
		return nil, fmt.Errorf("create population: %w", err)
	}
	attrs := []any{
		slog.String("run_id", t.runID),
		slog.Int("population", t.pop.Len()),
	}
	if t.hasSeed {
		attrs = append(attrs, slog.Int64("seed", t.seed))
	}
	t.logger.Info("tournament created", attrs...)
	return t, nil
}

// Advance plays the next round against the alive subset as it stands now,
// applies its eliminations as one batch, and moves to the next state. After
// the final the tournament settles in StageCompleted.
func (t *Tournament) Advance() (Step, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage == StageCompleted {
		return Step{Round: StageCompleted, State: StageCompleted}, ErrAlreadyCompleted
	}
	round := t.stage + 1
	rule, ok := RuleFor(round)
	if !ok {
		return Step{State: t.stage}, fmt.Errorf("no rule for stage %s", round)
	}

	alive := t.pop.AliveSubset()
	var warnings []Warning
	if len(alive) == 0 {
		warnings = append(warnings, Warning{
			Kind:   WarningEmptyField,
			Round:  round,
			Detail: "no competitors alive",
		})
	}
	out := rule(alive, t.src)
	warnings = append(warnings, out.Warnings...)
	eliminated := t.pop.Eliminate(out.Eliminated...)

	next := round
	if round == StageFinal {
		next = StageCompleted
	}
	t.stage = next

	step := Step{
		Number:      len(t.history) + 1,
		Round:       round,
		State:       next,
		Eliminated:  eliminated,
		Warnings:    warnings,
		AliveBefore: len(alive),
		AliveAfter:  len(alive) - len(eliminated),
	}
	t.history = append(t.history, step)
	t.record(step)
	return cloneStep(step), nil
}

// record writes the step to the event log, the logger and the observers.
func (t *Tournament) record(step Step) {
	t.log.Add(step.Number, step.Round, "--", CategoryRound, KeyRoundComplete,
		fmt.Sprintf("%s %d → %d", step.Round, step.AliveBefore, step.AliveAfter),
		float64(len(step.Eliminated)))
	for _, id := range step.Eliminated {
		c, _ := t.pop.Lookup(id)
		t.log.Add(step.Number, step.Round, c.Label(), CategoryElim, KeyEliminated,
			step.Round.String(), 0)
	}
	for _, w := range step.Warnings {
		t.log.Add(step.Number, step.Round, "--", CategoryWarning, w.Kind.String(), w.Detail, 0)
		t.logger.Warn("round warning",
			slog.String("run_id", t.runID),
			slog.String("round", w.Round.String()),
			slog.String("kind", w.Kind.String()),
			slog.String("detail", w.Detail),
		)
	}

	t.logger.Info("round complete",
		slog.String("run_id", t.runID),
		slog.Int("step", step.Number),
		slog.String("round", step.Round.String()),
		slog.Int("eliminated", len(step.Eliminated)),
		slog.Int("alive_before", step.AliveBefore),
		slog.Int("alive_after", step.AliveAfter),
	)
	if step.State == StageCompleted {
		t.logger.Info("tournament completed",
			slog.String("run_id", t.runID),
			slog.Int("survivors", step.AliveAfter),
		)
	}
	for _, o := range t.observers {
		o.ObserveStep(t.runID, cloneStep(step))
	}
}

// Restart replaces the population with count fresh competitors, drawing from
// the same source, and resets the state to the Lobby under a new run id.
func (t *Tournament) Restart(count int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pop := NewPopulation(t.width, t.height)
	if err := pop.Create(count, t.names, t.src); err != nil {
		return fmt.Errorf("create population: %w", err)
	}
	t.pop = pop
	t.count = count
	t.stage = StageLobby
	t.history = nil
	t.log.Reset()
	t.runID = uuid.NewString()
	t.logger.Info("tournament restarted",
		slog.String("run_id", t.runID),
		slog.Int("population", count),
	)
	return nil
}

// CurrentState returns the current stage.
func (t *Tournament) CurrentState() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stage
}

// IsCompleted reports whether the final has been played.
func (t *Tournament) IsCompleted() bool {
	return t.CurrentState() == StageCompleted
}

// Ranking returns alive competitors first, then eliminated ones, each group
// in creation order. It is only available once completed.
func (t *Tournament) Ranking() ([]Competitor, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.stage != StageCompleted {
		return nil, ErrNotCompleted
	}
	return t.pop.Ranking(), nil
}

// Standings is Ranking without the completion guard, for live displays.
func (t *Tournament) Standings() []Competitor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.Ranking()
}

// AliveSubset returns the alive competitors in creation order.
func (t *Tournament) AliveSubset() []Competitor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.AliveSubset()
}

// AliveCount returns the number of alive competitors.
func (t *Tournament) AliveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.AliveCount()
}

// Competitors returns every competitor in creation order.
func (t *Tournament) Competitors() []Competitor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.All()
}

// ByID returns an alive competitor.
func (t *Tournament) ByID(id int) (Competitor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.ByID(id)
}

// Lookup returns a competitor with its liveness status.
func (t *Tournament) Lookup(id int) (Competitor, LookupStatus) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pop.Lookup(id)
}

// RunID identifies the current run in logs and snapshots.
func (t *Tournament) RunID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.runID
}

// Seed returns the math/rand seed in use, if the source was seeded here.
func (t *Tournament) Seed() (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.seed, t.hasSeed
}

// History returns every step applied since the last restart or restore.
func (t *Tournament) History() []Step {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Step, len(t.history))
	for i, s := range t.history {
		out[i] = cloneStep(s)
	}
	return out
}

// EventLog returns a copy of the run's event log.
func (t *Tournament) EventLog() *EventLog {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &EventLog{entries: t.log.Entries()}
}

func cloneStep(s Step) Step {
	s.Eliminated = append([]int(nil), s.Eliminated...)
	s.Warnings = append([]Warning(nil), s.Warnings...)
	return s
}
