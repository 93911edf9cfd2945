package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamephreak/EPOke/internal/stats"
)

const storeDump = `{
  "info": {"metagame": "gen4ou"},
  "pokemon": {
    "Pidgey": {
      "usage": {"raw": 120, "weighted": 100},
      "lead": {"raw": 50, "weighted": 40},
      "spreads": {"Adamant:0/252/0/0/4/252": 55.5},
      "abilities": {"Keen Eye": 90},
      "items": {"Choice Band": 60},
      "moves": {"Return": 80, "Roost": 45},
      "teammates": {"Rattata": 30.5}
    },
    "Rattata": {
      "usage": {"raw": 90, "weighted": 75},
      "lead": {"raw": 5, "weighted": 2},
      "spreads": {}, "abilities": {}, "items": {}, "moves": {}, "teammates": {}
    }
  }
}`

func importedStore(t *testing.T) *Store {
	t.Helper()
	snapshot, err := stats.Read(strings.NewReader(storeDump))
	if err != nil {
		t.Fatalf("stats.Read() error = %v", err)
	}

	store, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Import(context.Background(), snapshot); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return store
}

func TestStoreServesUsage(t *testing.T) {
	store := importedStore(t)

	usage, err := store.Usage()
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("Usage() returned %d species, want 2", len(usage))
	}
	pidgey := usage["pidgey"]
	if pidgey.Usage.Weighted != 100 || pidgey.Lead.Weighted != 40 {
		t.Errorf("pidgey weights = %+v, want usage 100 lead 40", pidgey)
	}
}

func TestStoreServesMoveset(t *testing.T) {
	store := importedStore(t)

	moveset, err := store.Moveset("Pidgey")
	if err != nil {
		t.Fatalf("Moveset(Pidgey) error = %v", err)
	}
	if got := moveset.Spreads["Adamant:0/252/0/0/4/252"]; got != 55.5 {
		t.Errorf("spread weight = %v, want 55.5", got)
	}
	if got := moveset.Moves["Return"]; got != 80 {
		t.Errorf("move weight = %v, want 80", got)
	}
	if got := moveset.Teammates["Rattata"]; got != 30.5 {
		t.Errorf("teammate weight = %v, want 30.5", got)
	}
}

func TestStoreUnknownSpecies(t *testing.T) {
	store := importedStore(t)
	if _, err := store.Moveset("Missingno"); !errors.Is(err, stats.ErrUnknownSpecies) {
		t.Errorf("Moveset(Missingno) error = %v, want ErrUnknownSpecies", err)
	}
}

func TestImportReplacesPriorContents(t *testing.T) {
	store := importedStore(t)

	replacement, err := stats.Read(strings.NewReader(`{
	  "pokemon": {
	    "Spearow": {
	      "usage": {"weighted": 10}, "lead": {"weighted": 1},
	      "spreads": {}, "abilities": {}, "items": {}, "moves": {}, "teammates": {}
	    }
	  }
	}`))
	if err != nil {
		t.Fatalf("stats.Read() error = %v", err)
	}
	if err := store.Import(context.Background(), replacement); err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	usage, err := store.Usage()
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Usage() returned %d species after reimport, want 1", len(usage))
	}
	if _, err := store.Moveset("Pidgey"); !errors.Is(err, stats.ErrUnknownSpecies) {
		t.Error("reimport left stale species behind")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open() accepted a blank path")
	}
}
