// Package main provides a CLI for importing a usage statistics JSON dump
// into the SQLite store the predictor reads from.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/gamephreak/EPOke/internal/cmd/importstats"
	"github.com/gamephreak/EPOke/internal/platform/config"
)

func main() {
	cfg, err := importstats.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := importstats.Run(context.Background(), cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
}
