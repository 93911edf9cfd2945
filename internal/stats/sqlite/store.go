// Package sqlite provides a SQLite-backed statistics source. A JSON dump
// is imported once; afterwards the predictor reads usage summaries and
// per-species movesets straight from disk.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gamephreak/EPOke/internal/id"
	"github.com/gamephreak/EPOke/internal/platform/storage/sqlitemigrate"
	"github.com/gamephreak/EPOke/internal/stats"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Distribution facets stored per species.
const (
	facetSpread   = "spread"
	facetAbility  = "ability"
	facetItem     = "item"
	facetMove     = "move"
	facetTeammate = "teammate"
)

// Store persists usage statistics in SQLite and serves stats.Source reads.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a statistics store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Import replaces the store's contents with a snapshot.
func (s *Store) Import(ctx context.Context, snapshot *stats.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("snapshot is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM distributions"); err != nil {
		return fmt.Errorf("clear distributions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM species"); err != nil {
		return fmt.Errorf("clear species: %w", err)
	}

	insertSpecies, err := tx.PrepareContext(ctx, `
INSERT INTO species (id, name, usage_raw, usage_weighted, lead_raw, lead_weighted)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare species insert: %w", err)
	}
	defer insertSpecies.Close()

	insertDistribution, err := tx.PrepareContext(ctx, `
INSERT INTO distributions (species, facet, name, weight)
VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare distribution insert: %w", err)
	}
	defer insertDistribution.Close()

	err = snapshot.Walk(func(key, name string, species *stats.SpeciesStatistics) error {
		if _, err := insertSpecies.ExecContext(ctx, key, name,
			species.Usage.Raw, species.Usage.Weighted,
			species.Lead.Raw, species.Lead.Weighted,
		); err != nil {
			return fmt.Errorf("insert species %s: %w", key, err)
		}
		facets := []struct {
			facet   string
			weights map[string]float64
		}{
			{facetSpread, species.Spreads},
			{facetAbility, species.Abilities},
			{facetItem, species.Items},
			{facetMove, species.Moves},
			{facetTeammate, species.Teammates},
		}
		for _, f := range facets {
			for entry, weight := range f.weights {
				if _, err := insertDistribution.ExecContext(ctx, key, f.facet, entry, weight); err != nil {
					return fmt.Errorf("insert %s %s for %s: %w", f.facet, entry, key, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Usage implements stats.Source.
func (s *Store) Usage() (map[string]stats.UsageWeights, error) {
	rows, err := s.sqlDB.Query(`
SELECT id, usage_raw, usage_weighted, lead_raw, lead_weighted FROM species`)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]stats.UsageWeights)
	for rows.Next() {
		var key string
		var weights stats.UsageWeights
		if err := rows.Scan(&key,
			&weights.Usage.Raw, &weights.Usage.Weighted,
			&weights.Lead.Raw, &weights.Lead.Weighted,
		); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		usage[key] = weights
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return usage, nil
}

// Moveset implements stats.Source.
func (s *Store) Moveset(species string) (*stats.SpeciesStatistics, error) {
	key := id.Make(species)

	moveset := &stats.SpeciesStatistics{
		Spreads:   make(map[string]float64),
		Abilities: make(map[string]float64),
		Items:     make(map[string]float64),
		Moves:     make(map[string]float64),
		Teammates: make(map[string]float64),
	}
	row := s.sqlDB.QueryRow(`
SELECT usage_raw, usage_weighted, lead_raw, lead_weighted FROM species WHERE id = ?`, key)
	if err := row.Scan(
		&moveset.Usage.Raw, &moveset.Usage.Weighted,
		&moveset.Lead.Raw, &moveset.Lead.Weighted,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", stats.ErrUnknownSpecies, species)
		}
		return nil, fmt.Errorf("scan species %s: %w", key, err)
	}

	rows, err := s.sqlDB.Query(`
SELECT facet, name, weight FROM distributions WHERE species = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("query distributions for %s: %w", key, err)
	}
	defer rows.Close()

	for rows.Next() {
		var facet, name string
		var weight float64
		if err := rows.Scan(&facet, &name, &weight); err != nil {
			return nil, fmt.Errorf("scan distribution row: %w", err)
		}
		switch facet {
		case facetSpread:
			moveset.Spreads[name] = weight
		case facetAbility:
			moveset.Abilities[name] = weight
		case facetItem:
			moveset.Items[name] = weight
		case facetMove:
			moveset.Moves[name] = weight
		case facetTeammate:
			moveset.Teammates[name] = weight
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distribution rows: %w", err)
	}
	return moveset, nil
}
