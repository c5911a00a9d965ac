package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/M1tsumi/arc-duels/internal/game"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestLoad_CreatesDefaultProfile(t *testing.T) {
	s := newStore(t)
	p, err := s.Load(42)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.UserID != 42 {
		t.Fatalf("user id = %d, want 42", p.UserID)
	}
	if p.DuelStats == nil || p.DuelStats.DuelRating != game.StartingRating {
		t.Fatalf("default profile should start at rating %d, got %+v", game.StartingRating, p.DuelStats)
	}
	if len(p.Skills) != len(game.Elements) {
		t.Fatalf("default skills should cover all elements, got %d", len(p.Skills))
	}
	if _, err := os.Stat(filepath.Join(s.dir, "42.json")); err != nil {
		t.Fatalf("default profile not written to disk: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newStore(t)
	p, err := s.Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p.DuelStats.DuelRating = 1337
	p.DuelStats.DuelWins = 3
	p.Resources.SkillPoints = 2
	if err := s.Save(7, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(7)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DuelStats.DuelRating != 1337 || got.DuelStats.DuelWins != 3 {
		t.Fatalf("stats did not round-trip: %+v", got.DuelStats)
	}
	if got.Resources.SkillPoints != 2 {
		t.Fatalf("resources did not round-trip: %+v", got.Resources)
	}
}

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	s := newStore(t)
	a, err := s.Load(9)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a.DuelStats.DuelWins = 99

	b, err := s.Load(9)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.DuelStats.DuelWins != 0 {
		t.Fatalf("unsaved mutation leaked into a later load: %d wins", b.DuelStats.DuelWins)
	}
}

func TestLoad_NormalizesSparseFile(t *testing.T) {
	dir := t.TempDir()
	sparse := []byte(`{"user_id": 5}`)
	if err := os.WriteFile(filepath.Join(dir, "5.json"), sparse, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	p, err := s.Load(5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.DuelStats == nil || p.Heroes.OwnedHeroes == nil || p.Skills == nil {
		t.Fatalf("sparse profile not normalized: %+v", p)
	}
	if p.DuelStats.ElementRecordFor(game.ElementFire) == nil {
		t.Fatalf("element stats not backfilled")
	}
}

func TestSave_WritesWireFormat(t *testing.T) {
	s := newStore(t)
	p, err := s.Load(11)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p.DuelStats.DuelWins = 1
	if err := s.Save(11, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(s.dir, "11.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if _, ok := raw["duel_stats"]; !ok {
		t.Fatalf("file missing duel_stats section: %s", b)
	}
	var stats map[string]json.RawMessage
	if err := json.Unmarshal(raw["duel_stats"], &stats); err != nil {
		t.Fatalf("parse duel_stats: %v", err)
	}
	for _, key := range []string{"total_duels", "duel_wins", "duel_rating", "element_stats", "recent_duels"} {
		if _, ok := stats[key]; !ok {
			t.Fatalf("duel_stats missing %q", key)
		}
	}
}

func TestHeroFor_FallsBackToDefault(t *testing.T) {
	p := DefaultProfile(1)
	rec := HeroFor(p, game.ElementWater)
	if rec == nil || rec.Rarity != game.RarityRare || rec.Stars != 1 {
		t.Fatalf("expected fresh rare 1-star water hero, got %+v", rec)
	}
	owned := &game.HeroRecord{Rarity: game.RarityEpic, Stars: 2, Element: game.ElementWater}
	p.Heroes.OwnedHeroes[game.ElementWater] = owned
	if got := HeroFor(p, game.ElementWater); got != owned {
		t.Fatalf("owned hero not preferred")
	}
}
