// Package profile implements the durable per-user profile store. Profiles
// are stored as one JSON file per user id; the duel engine reads and writes
// only the hero, skill, resource and duel_stats sub-records.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/M1tsumi/arc-duels/internal/game"
	"github.com/M1tsumi/arc-duels/internal/hero"
	"github.com/M1tsumi/arc-duels/internal/logging"

	"golang.org/x/sync/singleflight"
)

// Store is the persistence boundary consumed by the duel engine.
type Store interface {
	// Load returns the user's profile, creating a default one for unknown
	// users. The returned profile is the caller's copy to mutate.
	Load(userID int64) (*game.Profile, error)
	// Save persists the profile and refreshes its last-updated stamp.
	Save(userID int64, p *game.Profile) error
}

// cacheTTL bounds how long cached profiles are served before the cache is
// dropped wholesale.
const cacheTTL = 5 * time.Minute

// FileStore keeps one JSON file per user under dir. Loads are cached and
// concurrent loads of the same user are collapsed into a single disk read.
type FileStore struct {
	dir string

	mu        sync.Mutex
	cache     map[int64]*game.Profile
	lastClear time.Time

	group singleflight.Group
}

// NewFileStore creates the profile directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:       dir,
		cache:     make(map[int64]*game.Profile),
		lastClear: time.Now(),
	}, nil
}

func (s *FileStore) path(userID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10)+".json")
}

// Load returns a deep copy of the user's profile so concurrent readers never
// observe in-place mutation.
func (s *FileStore) Load(userID int64) (*game.Profile, error) {
	s.mu.Lock()
	if time.Since(s.lastClear) > cacheTTL {
		s.cache = make(map[int64]*game.Profile)
		s.lastClear = time.Now()
	}
	if p, ok := s.cache[userID]; ok {
		s.mu.Unlock()
		return Clone(p)
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		return s.loadOrCreate(userID)
	})
	if err != nil {
		return nil, err
	}
	p := v.(*game.Profile)

	s.mu.Lock()
	s.cache[userID] = p
	s.mu.Unlock()
	return Clone(p)
}

func (s *FileStore) loadOrCreate(userID int64) (*game.Profile, error) {
	b, err := os.ReadFile(s.path(userID))
	switch {
	case err == nil:
		var p game.Profile
		if jsonErr := json.Unmarshal(b, &p); jsonErr != nil {
			return nil, fmt.Errorf("parse profile %d: %w", userID, jsonErr)
		}
		normalize(&p)
		return &p, nil
	case errors.Is(err, os.ErrNotExist):
		p := DefaultProfile(userID)
		if saveErr := s.write(userID, p); saveErr != nil {
			return nil, saveErr
		}
		logging.Info("created default profile", logging.Fields{"user_id": userID})
		return p, nil
	default:
		return nil, fmt.Errorf("read profile %d: %w", userID, err)
	}
}

// Save persists the profile and updates the cache entry.
func (s *FileStore) Save(userID int64, p *game.Profile) error {
	p.LastUpdated = time.Now().UTC()
	if err := s.write(userID, p); err != nil {
		return err
	}
	copied, err := Clone(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[userID] = copied
	s.mu.Unlock()
	return nil
}

func (s *FileStore) write(userID int64, p *game.Profile) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile %d: %w", userID, err)
	}
	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write profile %d: %w", userID, err)
	}
	if err := os.Rename(tmp, s.path(userID)); err != nil {
		return fmt.Errorf("replace profile %d: %w", userID, err)
	}
	return nil
}

// DefaultProfile returns a fresh profile at the starting rating with locked
// skill trees and no heroes.
func DefaultProfile(userID int64) *game.Profile {
	now := time.Now().UTC()
	return &game.Profile{
		UserID:      userID,
		CreatedAt:   now,
		LastUpdated: now,
		Heroes: game.Heroes{
			OwnedHeroes: make(map[game.Element]*game.HeroRecord),
		},
		Skills:    hero.DefaultSkills(),
		Resources: game.Resources{},
		DuelStats: game.NewDuelStats(),
	}
}

// normalize backfills sub-records older profile files may lack so callers
// never see nil maps.
func normalize(p *game.Profile) {
	if p.Heroes.OwnedHeroes == nil {
		p.Heroes.OwnedHeroes = make(map[game.Element]*game.HeroRecord)
	}
	if p.Skills == nil {
		p.Skills = hero.DefaultSkills()
	}
	if p.DuelStats == nil {
		p.DuelStats = game.NewDuelStats()
	}
	if p.DuelStats.ElementStats == nil {
		p.DuelStats.ElementStats = game.NewDuelStats().ElementStats
	}
}

// Clone deep-copies a profile through JSON; profiles are small and this
// keeps every nested map and slice independent.
func Clone(p *game.Profile) (*game.Profile, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out game.Profile
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	normalize(&out)
	return &out, nil
}

// HeroFor returns the user's hero record for an element, falling back to a
// fresh rare 1-star hero when the profile has none yet.
func HeroFor(p *game.Profile, element game.Element) *game.HeroRecord {
	if rec, ok := p.Heroes.OwnedHeroes[element]; ok && rec != nil {
		return rec
	}
	return hero.DefaultHero(element)
}
