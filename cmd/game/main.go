package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Squid-Sense/internal/config"
	"github.com/Garsondee/Squid-Sense/internal/game"
	"github.com/Garsondee/Squid-Sense/internal/persist"
	"github.com/Garsondee/Squid-Sense/internal/telemetry"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

func main() {
	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		config.Exitf("squid: %v", err)
	}
	logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	opts := append(cfg.TournamentOptions(), tournament.WithLogger(logger))
	t, err := tournament.New(opts...)
	if err != nil {
		config.Exitf("squid: %v", err)
	}

	// A missing store only disables F5/F9.
	var bridge *persist.Bridge
	slot, err := persist.OpenSlot(cfg.Store, logger)
	if err != nil {
		logger.Warn("save slot unavailable", slog.String("backend", cfg.Store.Backend), slog.Any("error", err))
	} else {
		bridge = persist.NewBridge(slot, logger)
	}

	v := game.New(context.Background(), t, bridge, cfg, logger)
	w, h := v.Size()
	ebiten.SetWindowTitle("Squid Sense")
	ebiten.SetWindowSize(w, h)
	runErr := ebiten.RunGame(v)
	if slot != nil {
		if err := slot.Close(); err != nil {
			logger.Warn("close save slot", slog.Any("error", err))
		}
	}
	if runErr != nil {
		logger.Error("viewer stopped", slog.Any("error", runErr))
		os.Exit(1)
	}
}
