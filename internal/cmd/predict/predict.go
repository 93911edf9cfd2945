// Package predict parses predict command flags and runs a team prediction.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gamephreak/EPOke/internal/dex"
	"github.com/gamephreak/EPOke/internal/heuristics"
	entrypoint "github.com/gamephreak/EPOke/internal/platform/cmd"
	"github.com/gamephreak/EPOke/internal/predictor"
	"github.com/gamephreak/EPOke/internal/random"
	"github.com/gamephreak/EPOke/internal/sets"
	"github.com/gamephreak/EPOke/internal/showdown"
	"github.com/gamephreak/EPOke/internal/stats"
	statssqlite "github.com/gamephreak/EPOke/internal/stats/sqlite"
)

// Config holds predict command configuration.
type Config struct {
	StatsPath  string `env:"EPOKE_STATS"`
	DexPath    string `env:"EPOKE_DEX"`
	Generation int    `env:"EPOKE_GENERATION" envDefault:"4"`
	Banlist    string `env:"EPOKE_BANLIST"`
	Seed       int64  `env:"EPOKE_SEED"`
	Budget     int    `env:"EPOKE_BUDGET" envDefault:"10"`
	TeamPath   string `env:"EPOKE_TEAM"`
	WatchURL   string `env:"EPOKE_WATCH_URL"`
	WatchRoom  string `env:"EPOKE_WATCH_ROOM"`
	WatchSide  string `env:"EPOKE_WATCH_SIDE" envDefault:"p2"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.StatsPath, "stats", cfg.StatsPath, "usage statistics (.json dump or imported .db)")
	fs.StringVar(&cfg.DexPath, "dex", cfg.DexPath, "species catalog JSON")
	fs.IntVar(&cfg.Generation, "generation", cfg.Generation, "game generation the format belongs to")
	fs.StringVar(&cfg.Banlist, "banlist", cfg.Banlist, "comma-separated species to exclude")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.Budget, "budget", cfg.Budget, "legality validation retry budget")
	fs.StringVar(&cfg.TeamPath, "team", cfg.TeamPath, "partial team JSON file")
	fs.StringVar(&cfg.WatchURL, "watch-url", cfg.WatchURL, "showdown websocket URL for watch mode")
	fs.StringVar(&cfg.WatchRoom, "watch-room", cfg.WatchRoom, "battle room to observe in watch mode")
	fs.StringVar(&cfg.WatchSide, "watch-side", cfg.WatchSide, "side to predict for in watch mode (p1 or p2)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes one prediction and writes the team export to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePredict, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.StatsPath == "" {
		return errors.New("usage statistics are required (-stats)")
	}
	if cfg.DexPath == "" {
		return errors.New("a species catalog is required (-dex)")
	}

	catalog, err := dex.ReadFile(cfg.DexPath)
	if err != nil {
		return err
	}
	source, closeSource, err := openSource(cfg.StatsPath)
	if err != nil {
		return err
	}
	defer closeSource()

	format := dex.NewFormat(catalog, dex.FormatConfig{
		Generation: cfg.Generation,
		Banlist:    splitBanlist(cfg.Banlist),
	})
	p, err := predictor.New(format, source, predictor.Options{
		Generation: cfg.Generation,
		Heuristics: func() heuristics.Heuristics { return heuristics.NewUsage(source) },
	})
	if err != nil {
		return err
	}

	partial, err := partialTeam(ctx, cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	log.Printf("predicting with seed %d", seed)

	_, span := otel.Tracer("epoke").Start(ctx, "predict team")
	span.SetAttributes(
		attribute.Int("generation", cfg.Generation),
		attribute.Int("known_slots", len(partial)),
		attribute.Int64("seed", seed),
	)
	defer span.End()

	team, err := p.PredictTeam(partial, rand.New(rand.NewSource(seed)), cfg.Budget)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("team_size", len(team)))

	_, err = fmt.Fprintln(out, sets.Export(team))
	return err
}

// openSource picks the statistics backend from the file extension: an
// imported SQLite store for .db/.sqlite, a JSON dump otherwise.
func openSource(path string) (stats.Source, func(), error) {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		store, err := statssqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	snapshot, err := stats.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, func() {}, nil
}

// partialTeam gathers the known opponent information, either from a team
// file or by observing a live battle until the caller interrupts.
func partialTeam(ctx context.Context, cfg Config) (sets.Team, error) {
	if cfg.TeamPath != "" {
		return readTeamFile(cfg.TeamPath)
	}
	if cfg.WatchRoom == "" {
		return nil, nil
	}

	client, err := showdown.Dial(ctx, cfg.WatchURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	if err := client.Join(cfg.WatchRoom); err != nil {
		return nil, err
	}

	observer := showdown.NewObserver(cfg.WatchSide)
	log.Printf("observing %s for side %s; interrupt to predict", cfg.WatchRoom, cfg.WatchSide)
	err = client.Listen(ctx, func(room, line string) {
		if room == cfg.WatchRoom || room == "" {
			observer.Observe(line)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return observer.Team(), nil
}

func readTeamFile(path string) (sets.Team, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open team file: %w", err)
	}
	defer file.Close()

	var team sets.Team
	if err := json.NewDecoder(file).Decode(&team); err != nil {
		return nil, fmt.Errorf("decode team file: %w", err)
	}
	if len(team) > sets.MaxTeamSize {
		return nil, fmt.Errorf("team file has %d members, max %d", len(team), sets.MaxTeamSize)
	}
	for i, member := range team {
		if member == nil || member.Species == "" {
			return nil, fmt.Errorf("team file member %d has no species", i)
		}
	}
	return team, nil
}

func splitBanlist(banlist string) []string {
	if strings.TrimSpace(banlist) == "" {
		return nil
	}
	parts := strings.Split(banlist, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
