package tournament

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// SnapshotVersion is written into every encoded Snapshot.
const SnapshotVersion = 1

// ErrCorruptSnapshot wraps every validation failure during decode.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the serializable form of a tournament: its population plus the
// stage it was saved at.
type Snapshot struct {
	Version     int          `json:"version"`
	RunID       string       `json:"run_id,omitempty"`
	Stage       Stage        `json:"-"`
	StageName   string       `json:"stage"`
	Competitors []Competitor `json:"competitors"`
}

// competitorRecord mirrors Competitor with pointers so absent fields can be
// told apart from zero values.
type competitorRecord struct {
	ID    *int    `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alive *bool   `json:"alive"`
	Stats *Stats  `json:"stats"`
}

type snapshotRecord struct {
	Version     int                `json:"version"`
	RunID       string             `json:"run_id"`
	StageName   string             `json:"stage"`
	Competitors []competitorRecord `json:"competitors"`
}

// EncodePopulation serializes every competitor as a JSON array, the same
// shape older save slots hold.
func EncodePopulation(p *Population) ([]byte, error) {
	data, err := json.Marshal(p.All())
	if err != nil {
		return nil, fmt.Errorf("marshal population: %w", err)
	}
	return data, nil
}

// DecodePopulation parses a JSON array produced by EncodePopulation into a new
// Population. Duplicate or non-positive ids, missing fields and stats outside
// [0,1) are rejected with ErrCorruptSnapshot.
func DecodePopulation(data []byte) (*Population, error) {
	var records []competitorRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	cs, err := competitorsFromRecords(records)
	if err != nil {
		return nil, err
	}
	p := NewPopulation(DefaultFieldWidth, DefaultFieldHeight)
	p.replace(cs)
	return p, nil
}

func competitorsFromRecords(records []competitorRecord) ([]Competitor, error) {
	seen := make(map[int]bool, len(records))
	out := make([]Competitor, 0, len(records))
	for i, r := range records {
		if r.ID == nil {
			return nil, fmt.Errorf("%w: entry %d: missing id", ErrCorruptSnapshot, i)
		}
		id := *r.ID
		if id <= 0 {
			return nil, fmt.Errorf("%w: entry %d: non-positive id %d", ErrCorruptSnapshot, i, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrCorruptSnapshot, id)
		}
		seen[id] = true
		if r.Alive == nil {
			return nil, fmt.Errorf("%w: id %d: missing alive", ErrCorruptSnapshot, id)
		}
		if r.Stats == nil {
			return nil, fmt.Errorf("%w: id %d: missing stats", ErrCorruptSnapshot, id)
		}
		if err := r.Stats.validate(); err != nil {
			return nil, fmt.Errorf("%w: id %d: %v", ErrCorruptSnapshot, id, err)
		}
		out = append(out, Competitor{
			ID:    id,
			Name:  r.Name,
			X:     r.X,
			Y:     r.Y,
			Alive: *r.Alive,
			Stats: *r.Stats,
		})
	}
	return out, nil
}

// EncodeSnapshot serializes a Snapshot as JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.Version = SnapshotVersion
	s.StageName = s.Stage.String()
	if s.Competitors == nil {
		s.Competitors = []Competitor{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses an encoded Snapshot. A bare population array is also
// accepted and restored at the Lobby.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		p, err := DecodePopulation(trimmed)
		if err != nil {
			return Snapshot{}, err
		}
		return Snapshot{
			Version:     SnapshotVersion,
			Stage:       StageLobby,
			StageName:   StageLobby.String(),
			Competitors: p.All(),
		}, nil
	}

	var rec snapshotRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if rec.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, rec.Version)
	}
	stage, err := ParseStage(rec.StageName)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if stage == StageFinal {
		// Final is never a resting state.
		return Snapshot{}, fmt.Errorf("%w: stage %s", ErrCorruptSnapshot, stage)
	}
	cs, err := competitorsFromRecords(rec.Competitors)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:     rec.Version,
		RunID:       rec.RunID,
		Stage:       stage,
		StageName:   stage.String(),
		Competitors: cs,
	}, nil
}

// Snapshot captures the current population and stage.
func (t *Tournament) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Version:     SnapshotVersion,
		RunID:       t.runID,
		Stage:       t.stage,
		StageName:   t.stage.String(),
		Competitors: t.pop.All(),
	}
}

// Restore replaces the population and stage wholesale. History and the event
// log restart empty. Competitors are validated as in DecodeSnapshot.
func (t *Tournament) Restore(s Snapshot) error {
	if s.Stage == StageFinal || s.Stage < StageLobby || s.Stage > StageCompleted {
		return fmt.Errorf("%w: stage %s", ErrCorruptSnapshot, s.Stage)
	}
	records := make([]competitorRecord, len(s.Competitors))
	for i := range s.Competitors {
		c := s.Competitors[i]
		records[i] = competitorRecord{ID: &c.ID, Name: c.Name, X: c.X, Y: c.Y, Alive: &c.Alive, Stats: &c.Stats}
	}
	cs, err := competitorsFromRecords(records)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	pop := NewPopulation(t.width, t.height)
	pop.replace(cs)
	t.pop = pop
	t.count = len(cs)
	t.stage = s.Stage
	t.history = nil
	t.log.Reset()
	t.runID = s.RunID
	if t.runID == "" {
		t.runID = uuid.NewString()
	}
	t.logger.Info("tournament restored",
		slog.String("run_id", t.runID),
		slog.String("stage", t.stage.String()),
		slog.Int("population", pop.Len()),
		slog.Int("alive", pop.AliveCount()),
	)
	return nil
}
