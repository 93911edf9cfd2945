// Package main provides the team prediction CLI: given usage statistics,
// a species catalog, and optional partial knowledge of an opponent's team,
// it prints a plausible full team in Showdown export format.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	predictcmd "github.com/gamephreak/EPOke/internal/cmd/predict"
)

func main() {
	cfg, err := predictcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[EPOKE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := predictcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("failed to predict: %v", err)
	}
}
