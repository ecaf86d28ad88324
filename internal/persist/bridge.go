package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Garsondee/Squid-Sense/internal/telemetry"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// SaveKey is the single slot the viewer and the headless report share.
const SaveKey = "squid_sim_save"

// Bridge moves tournaments in and out of a Slot.
type Bridge struct {
	slot   Slot
	key    string
	logger *slog.Logger
}

// NewBridge wraps slot. A nil logger discards.
func NewBridge(slot Slot, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{slot: slot, key: SaveKey, logger: logger}
}

// Save snapshots t and writes it to the slot.
func (b *Bridge) Save(ctx context.Context, t *tournament.Tournament) error {
	ctx, span := telemetry.StartSpan(ctx, "persist.Save")
	defer span.End()

	snap := t.Snapshot()
	span.SetAttributes(
		attribute.String("squid.run_id", snap.RunID),
		attribute.String("squid.stage", snap.Stage.String()),
		attribute.Int("squid.population", len(snap.Competitors)),
	)
	data, err := tournament.EncodeSnapshot(snap)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := b.slot.Save(ctx, b.key, data); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	b.logger.Info("tournament saved",
		slog.String("run_id", snap.RunID),
		slog.String("stage", snap.Stage.String()),
		slog.Int("bytes", len(data)),
	)
	return nil
}

// Peek reads and decodes the stored snapshot without touching a tournament.
func (b *Bridge) Peek(ctx context.Context) (tournament.Snapshot, error) {
	ctx, span := telemetry.StartSpan(ctx, "persist.Peek")
	defer span.End()

	snap, err := b.read(ctx)
	if err != nil && !errors.Is(err, ErrNoSave) {
		telemetry.RecordError(span, err)
	}
	return snap, err
}

// Load restores t from the slot. On ErrNoSave or a corrupt snapshot t is left
// unchanged.
func (b *Bridge) Load(ctx context.Context, t *tournament.Tournament) error {
	ctx, span := telemetry.StartSpan(ctx, "persist.Load")
	defer span.End()

	snap, err := b.read(ctx)
	if errors.Is(err, ErrNoSave) {
		b.logger.Debug("no save found", slog.String("key", b.key))
		return err
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := t.Restore(snap); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("restore: %w", err)
	}
	span.SetAttributes(
		attribute.String("squid.run_id", t.RunID()),
		attribute.String("squid.stage", snap.Stage.String()),
	)
	b.logger.Info("tournament loaded",
		slog.String("run_id", t.RunID()),
		slog.String("stage", snap.Stage.String()),
		slog.Int("alive", t.AliveCount()),
	)
	return nil
}

func (b *Bridge) read(ctx context.Context) (tournament.Snapshot, error) {
	data, err := b.slot.Load(ctx, b.key)
	if err != nil {
		return tournament.Snapshot{}, err
	}
	snap, err := tournament.DecodeSnapshot(data)
	if err != nil {
		return tournament.Snapshot{}, fmt.Errorf("decode %s: %w", b.key, err)
	}
	return snap, nil
}
