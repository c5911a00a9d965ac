package rating

import "github.com/M1tsumi/arc-duels/internal/game"

// achievementCheck pairs an achievement id with its unlock predicate over
// the player's duel stats.
type achievementCheck struct {
	id        string
	satisfied func(*game.DuelStats) bool
}

// achievementChecks is evaluated in order after every stats update. Order is
// stable so newly unlocked ids are reported consistently.
var achievementChecks = []achievementCheck{
	{"first_blood", func(s *game.DuelStats) bool { return s.DuelWins >= 1 }},
	{"dueling_novice", func(s *game.DuelStats) bool { return s.TotalDuels >= 10 }},
	{"dueling_veteran", func(s *game.DuelStats) bool { return s.TotalDuels >= 50 }},
	{"dueling_master", func(s *game.DuelStats) bool { return s.TotalDuels >= 100 }},
	{"unstoppable", func(s *game.DuelStats) bool { return s.BestStreak >= 5 }},
	{"dominator", func(s *game.DuelStats) bool { return s.BestStreak >= 10 }},
	{"legend", func(s *game.DuelStats) bool { return s.BestStreak >= 15 }},
	{"element_master_fire", elementWins(game.ElementFire, 10)},
	{"element_master_water", elementWins(game.ElementWater, 10)},
	{"element_master_earth", elementWins(game.ElementEarth, 10)},
	{"element_master_air", elementWins(game.ElementAir, 10)},
	{"silver_rank", func(s *game.DuelStats) bool { return s.DuelRating >= 1200 }},
	{"gold_rank", func(s *game.DuelStats) bool { return s.DuelRating >= 1400 }},
	{"platinum_rank", func(s *game.DuelStats) bool { return s.DuelRating >= 1600 }},
	{"diamond_rank", func(s *game.DuelStats) bool { return s.DuelRating >= 1800 }},
	{"master_rank", func(s *game.DuelStats) bool { return s.DuelRating >= 2000 }},
}

func elementWins(e game.Element, n int) func(*game.DuelStats) bool {
	return func(s *game.DuelStats) bool {
		rec, ok := s.ElementStats[e]
		return ok && rec.Wins >= n
	}
}

// CheckAchievements appends every newly satisfied achievement id to the
// stats record and returns the new ids. Already-held ids are skipped, so the
// call is idempotent.
func CheckAchievements(s *game.DuelStats) []string {
	var unlocked []string
	for _, check := range achievementChecks {
		if s.HasAchievement(check.id) {
			continue
		}
		if check.satisfied(s) {
			s.Achievements = append(s.Achievements, check.id)
			unlocked = append(unlocked, check.id)
		}
	}
	return unlocked
}

// AchievementProgress is one row of a player's achievement overview.
type AchievementProgress struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Current     int     `json:"current"`
	Target      int     `json:"target"`
	Progress    float64 `json:"progress"`
	Completed   bool    `json:"completed"`
}

// ProgressList reports progress toward the tracked milestone achievements.
func ProgressList(s *game.DuelStats) []AchievementProgress {
	rows := []struct {
		id, name, desc string
		target         int
		current        int
	}{
		{"first_blood", "First Blood", "Win your first duel", 1, min(1, s.DuelWins)},
		{"dueling_novice", "Dueling Novice", "Play 10 duels", 10, s.TotalDuels},
		{"dueling_veteran", "Dueling Veteran", "Play 50 duels", 50, s.TotalDuels},
		{"unstoppable", "Unstoppable", "Win 5 duels in a row", 5, min(5, s.BestStreak)},
		{"dominator", "Dominator", "Win 10 duels in a row", 10, min(10, s.BestStreak)},
		{"silver_rank", "Silver Rank", "Reach Silver tier (1200 rating)", 1200, s.DuelRating},
		{"gold_rank", "Gold Rank", "Reach Gold tier (1400 rating)", 1400, s.DuelRating},
		{"diamond_rank", "Diamond Rank", "Reach Diamond tier (1800 rating)", 1800, s.DuelRating},
	}

	out := make([]AchievementProgress, 0, len(rows))
	for _, r := range rows {
		pct := float64(r.current) / float64(r.target) * 100
		if pct > 100 {
			pct = 100
		}
		out = append(out, AchievementProgress{
			ID:          r.id,
			Name:        r.name,
			Description: r.desc,
			Current:     r.current,
			Target:      r.target,
			Progress:    pct,
			Completed:   r.current >= r.target,
		})
	}
	return out
}
