// Package importstats parses import command flags and loads a statistics
// dump into a SQLite store.
package importstats

import (
	"context"
	"errors"
	"flag"
	"log"

	entrypoint "github.com/gamephreak/EPOke/internal/platform/cmd"
	"github.com/gamephreak/EPOke/internal/stats"
	statssqlite "github.com/gamephreak/EPOke/internal/stats/sqlite"
)

// Config holds import command configuration.
type Config struct {
	DumpPath string `env:"EPOKE_STATS_DUMP"`
	DBPath   string `env:"EPOKE_STATS_DB" envDefault:"stats.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DumpPath, "dump", cfg.DumpPath, "usage statistics JSON dump to import")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite store to import into")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run imports the dump, replacing the store's prior contents.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceImport, func(ctx context.Context) error {
		if cfg.DumpPath == "" {
			return errors.New("a statistics dump is required (-dump)")
		}

		snapshot, err := stats.ReadFile(cfg.DumpPath)
		if err != nil {
			return err
		}

		store, err := statssqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Import(ctx, snapshot); err != nil {
			return err
		}
		log.Printf("imported %d species into %s", snapshot.Len(), cfg.DBPath)
		return nil
	})
}
