package game

import "time"

// ElementRecord holds per-element win/loss/draw counters.
type ElementRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Total returns how many duels were fought with this element.
func (r ElementRecord) Total() int { return r.Wins + r.Losses + r.Draws }

// DuelSummary is one entry of the bounded recent-duel history.
type DuelSummary struct {
	OpponentID      int64     `json:"opponent_id"`
	Result          string    `json:"result"`
	ElementUsed     Element   `json:"element_used"`
	OpponentElement Element   `json:"opponent_element"`
	RatingChange    int       `json:"rating_change"`
	Date            time.Time `json:"date"`
}

// RecentDuelsLimit bounds the recent-duels history stored per profile.
const RecentDuelsLimit = 10

// StartingRating is the rating every new profile begins with.
const StartingRating = 1000

// DuelStats is the durable per-user rating record. The JSON field names are
// the wire format of the profile file's duel_stats object and must not
// change: existing profiles round-trip through this struct.
type DuelStats struct {
	TotalDuels       int                        `json:"total_duels"`
	DuelWins         int                        `json:"duel_wins"`
	DuelLosses       int                        `json:"duel_losses"`
	DuelDraws        int                        `json:"duel_draws"`
	WinRate          float64                    `json:"win_rate"`
	CurrentStreak    int                        `json:"current_streak"`
	BestStreak       int                        `json:"best_streak"`
	DuelRating       int                        `json:"duel_rating"`
	TotalDamageDealt int                        `json:"total_damage_dealt"`
	TotalDamageTaken int                        `json:"total_damage_taken"`
	FavoriteElement  Element                    `json:"favorite_element"`
	ElementStats     map[Element]*ElementRecord `json:"element_stats"`
	RecentDuels      []DuelSummary              `json:"recent_duels"`
	Achievements     []string                   `json:"achievements"`
	LastDuelAt       *time.Time                 `json:"last_duel_at"`
}

// NewDuelStats returns a zeroed stats record at the starting rating with all
// element counters present.
func NewDuelStats() *DuelStats {
	es := make(map[Element]*ElementRecord, len(Elements))
	for _, e := range Elements {
		es[e] = &ElementRecord{}
	}
	return &DuelStats{
		DuelRating:   StartingRating,
		ElementStats: es,
		RecentDuels:  []DuelSummary{},
		Achievements: []string{},
	}
}

// ElementRecordFor returns the counter record for an element, creating it if
// the loaded profile predates that element.
func (s *DuelStats) ElementRecordFor(e Element) *ElementRecord {
	if s.ElementStats == nil {
		s.ElementStats = make(map[Element]*ElementRecord, len(Elements))
	}
	rec, ok := s.ElementStats[e]
	if !ok {
		rec = &ElementRecord{}
		s.ElementStats[e] = rec
	}
	return rec
}

// HasAchievement reports whether the achievement id was already unlocked.
func (s *DuelStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// HeroStats is the persisted stat block of an owned hero.
type HeroStats struct {
	BaseAtk    int `json:"base_atk"`
	BaseDef    int `json:"base_def"`
	BaseHP     int `json:"base_hp"`
	CurrentAtk int `json:"current_atk"`
	CurrentDef int `json:"current_def"`
	CurrentHP  int `json:"current_hp"`
}

// HeroRecord is one owned hero inside a profile.
type HeroRecord struct {
	Rarity  Rarity    `json:"rarity"`
	Stars   int       `json:"stars"`
	Level   int       `json:"level"`
	Element Element   `json:"element"`
	Stats   HeroStats `json:"stats"`
}

// Heroes is the hero sub-record of a profile.
type Heroes struct {
	PrimaryElement Element                 `json:"primary_element"`
	OwnedHeroes    map[Element]*HeroRecord `json:"owned_heroes"`
}

// Skills tracks unlocked skill-tree tiers per element. Keys follow the
// persisted "tier_N" naming of the profile file.
type Skills map[Element]map[string]bool

// Resources holds the spendable currencies referenced by duels and upgrades.
type Resources struct {
	BasicHeroShards int `json:"basic_hero_shards"`
	EpicHeroShards  int `json:"epic_hero_shards"`
	SkillPoints     int `json:"skill_points"`
}

// Profile is the durable per-user record. The duel engine reads and writes
// only the sub-records below; unrelated profile sections are out of scope.
type Profile struct {
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUpdated time.Time  `json:"last_updated"`
	Heroes      Heroes     `json:"heroes"`
	Skills      Skills     `json:"skills"`
	Resources   Resources  `json:"resources"`
	DuelStats   *DuelStats `json:"duel_stats"`
}
