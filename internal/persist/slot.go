// Package persist stores tournament snapshots in a named save slot. Two
// backends exist: BadgerDB (on disk or in memory) and SQLite.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Garsondee/Squid-Sense/internal/config"
)

// ErrNoSave is returned by Load when the key has never been written.
var ErrNoSave = errors.New("no save found")

// Slot is a small key/value store holding encoded snapshots.
type Slot interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// OpenSlot opens the backend selected in cfg.
func OpenSlot(cfg config.StoreConfig, logger *slog.Logger) (Slot, error) {
	var (
		slot Slot
		err  error
	)
	switch cfg.Backend {
	case config.BackendBadger:
		bc := DefaultBadgerConfig()
		bc.Path = cfg.Path
		bc.Logger = logger
		var s *BadgerSlot
		if s, err = OpenBadger(bc); err == nil {
			slot = s
		}
	case config.BackendMemory:
		var s *BadgerSlot
		if s, err = OpenMemory(logger); err == nil {
			slot = s
		}
	case config.BackendSQLite:
		var s *SQLiteSlot
		if s, err = OpenSQLite(cfg.Path); err == nil {
			slot = s
		}
	default:
		err = fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}
