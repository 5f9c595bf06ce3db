package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/storage"
	"github.com/relaycoach/relaycoach/go/internal/testutil"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Athletes) != 0 || len(snap.Teams) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "data", "roster.json"))

	r := roster.New()
	names := []string{"Alice Tan", "Ben Ong", "Cara Lee", "Dan Koh"}
	for _, n := range names {
		if err := r.AddAthlete(testutil.Athlete(t, n, "relay")); err != nil {
			t.Fatalf("add athlete: %v", err)
		}
	}
	team := testutil.Team(t, "Alpha", r.Athletes()...).
		WithSession(testutil.Session(t, "Track", testutil.At(7, 0), testutil.At(8, 0)))
	if err := r.AddTeam(team); err != nil {
		t.Fatalf("add team: %v", err)
	}

	if err := store.Save(ctx, storage.FromRoster(r)); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	restored, err := snap.Restore(testutil.Clock())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, ok := restored.Team("alpha")
	if !ok || !got.Equal(team) {
		t.Fatalf("expected %v, got %v", team, got)
	}
	for i, a := range r.Athletes() {
		if !a.Equal(restored.Athletes()[i]) {
			t.Fatalf("athlete %d differs after round trip", i)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the roster file, found %d entries", len(entries))
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected corrupt file to fail")
	}
}
