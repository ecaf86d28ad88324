package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Squid-Sense/internal/config"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// slotFactories open a fresh slot of each backend.
func slotFactories() map[string]func(t *testing.T) Slot {
	return map[string]func(t *testing.T) Slot{
		"memory": func(t *testing.T) Slot {
			s, err := OpenMemory(nil)
			require.NoError(t, err)
			return s
		},
		"badger": func(t *testing.T) Slot {
			cfg := DefaultBadgerConfig()
			cfg.Path = filepath.Join(t.TempDir(), "badger")
			cfg.SyncWrites = false
			s, err := OpenBadger(cfg)
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Slot {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "saves.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestSlot_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	for name, open := range slotFactories() {
		t.Run(name, func(t *testing.T) {
			slot := open(t)
			defer func() { require.NoError(t, slot.Close()) }()

			_, err := slot.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNoSave)

			require.NoError(t, slot.Save(ctx, "k", []byte("first")))
			require.NoError(t, slot.Save(ctx, "k", []byte("second")))
			got, err := slot.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), got)

			require.NoError(t, slot.Delete(ctx, "k"))
			_, err = slot.Load(ctx, "k")
			assert.ErrorIs(t, err, ErrNoSave)
			require.NoError(t, slot.Delete(ctx, "k"))
		})
	}
}

func TestSlot_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, open := range slotFactories() {
		t.Run(name, func(t *testing.T) {
			slot := open(t)
			defer slot.Close()
			assert.ErrorIs(t, slot.Save(ctx, "k", []byte("v")), context.Canceled)
			_, err := slot.Load(ctx, "k")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestBadgerSlot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultBadgerConfig()
	cfg.Path = filepath.Join(t.TempDir(), "db")

	slot, err := OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, SaveKey, []byte("payload")))
	require.NoError(t, slot.Close())

	slot, err = OpenBadger(cfg)
	require.NoError(t, err)
	defer slot.Close()
	got, err := slot.Load(ctx, SaveKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestSQLiteSlot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")

	slot, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, SaveKey, []byte("payload")))
	saved, err := slot.UpdatedAt(ctx, SaveKey)
	require.NoError(t, err)
	assert.False(t, saved.IsZero())
	require.NoError(t, slot.Close())

	slot, err = OpenSQLite(path)
	require.NoError(t, err)
	defer slot.Close()
	got, err := slot.Load(ctx, SaveKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	_, err = slot.UpdatedAt(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSave)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestOpenSlot(t *testing.T) {
	dir := t.TempDir()
	cases := []config.StoreConfig{
		{Backend: config.BackendMemory},
		{Backend: config.BackendBadger, Path: filepath.Join(dir, "badger")},
		{Backend: config.BackendSQLite, Path: filepath.Join(dir, "saves.db")},
	}
	for _, sc := range cases {
		slot, err := OpenSlot(sc, nil)
		require.NoError(t, err, sc.Backend)
		require.NoError(t, slot.Close(), sc.Backend)
	}

	_, err := OpenSlot(config.StoreConfig{Backend: "redis"}, nil)
	assert.Error(t, err)
}

func newTournament(t *testing.T, seed int64, count int) *tournament.Tournament {
	t.Helper()
	tr, err := tournament.New(tournament.WithSeed(seed), tournament.WithPopulation(count))
	require.NoError(t, err)
	return tr
}

func TestBridge_SaveLoad(t *testing.T) {
	ctx := context.Background()
	slot, err := OpenMemory(nil)
	require.NoError(t, err)
	defer slot.Close()
	bridge := NewBridge(slot, nil)

	src := newTournament(t, 21, 50)
	for i := 0; i < 2; i++ {
		_, err := src.Advance()
		require.NoError(t, err)
	}
	require.NoError(t, bridge.Save(ctx, src))

	dst := newTournament(t, 99, 3)
	require.NoError(t, bridge.Load(ctx, dst))
	assert.Equal(t, tournament.StageHoneycomb, dst.CurrentState())
	assert.Equal(t, src.RunID(), dst.RunID())
	assert.Equal(t, src.Competitors(), dst.Competitors())

	snap, err := bridge.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, tournament.StageHoneycomb, snap.Stage)
	assert.Len(t, snap.Competitors, 50)
}

func TestBridge_LoadWithoutSave(t *testing.T) {
	slot, err := OpenMemory(nil)
	require.NoError(t, err)
	defer slot.Close()

	tr := newTournament(t, 4, 10)
	before := tr.Competitors()
	err = NewBridge(slot, nil).Load(context.Background(), tr)
	assert.ErrorIs(t, err, ErrNoSave)
	assert.Equal(t, before, tr.Competitors())
	assert.Equal(t, tournament.StageLobby, tr.CurrentState())
}

func TestBridge_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	slot, err := OpenMemory(nil)
	require.NoError(t, err)
	defer slot.Close()
	require.NoError(t, slot.Save(ctx, SaveKey, []byte(`{"version":1,"stage":"final","competitors":[]}`)))

	tr := newTournament(t, 4, 10)
	err = NewBridge(slot, nil).Load(ctx, tr)
	assert.ErrorIs(t, err, tournament.ErrCorruptSnapshot)
	assert.Equal(t, 10, tr.AliveCount())
}

func TestBridge_LoadBareArray(t *testing.T) {
	ctx := context.Background()
	slot, err := OpenMemory(nil)
	require.NoError(t, err)
	defer slot.Close()

	legacy := newTournament(t, 8, 6)
	pop := tournament.NewPopulation(0, 0)
	require.NoError(t, pop.Create(6, tournament.DefaultNames, tournament.NewSeededSource(80)))
	data, err := tournament.EncodePopulation(pop)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, SaveKey, data))

	require.NoError(t, NewBridge(slot, nil).Load(ctx, legacy))
	assert.Equal(t, tournament.StageLobby, legacy.CurrentState())
	assert.Equal(t, pop.All(), legacy.Competitors())
}
