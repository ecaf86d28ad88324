package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/Squid-Sense/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		config.Exitf("headless-report: %v", err)
	}
}
