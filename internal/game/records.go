package game

import "gorm.io/gorm"

// DuelRecord archives one completed duel. Rows are append-only; the archive
// backs match history queries and audits of rating changes.
type DuelRecord struct {
	gorm.Model
	DuelKey           string `json:"duel_key" gorm:"index"`
	ChallengerID      int64  `json:"challenger_id" gorm:"index"`
	ChallengedID      int64  `json:"challenged_id" gorm:"index"`
	WinnerID          int64  `json:"winner_id"`
	LoserID           int64  `json:"loser_id"`
	Result            string `json:"result"`
	Turns             int    `json:"turns"`
	ChallengerElement string `json:"challenger_element"`
	ChallengedElement string `json:"challenged_element"`
	WinnerRatingDelta int    `json:"winner_rating_delta"`
	LoserRatingDelta  int    `json:"loser_rating_delta"`
	ChannelID         int64  `json:"channel_id"`
}

func (DuelRecord) TableName() string { return "duel_archive" }

// Ranking is the denormalized leaderboard row for one player, refreshed
// after every completed duel.
type Ranking struct {
	gorm.Model
	UserID          int64  `json:"user_id" gorm:"uniqueIndex"`
	Rating          int    `json:"rating" gorm:"index"`
	Tier            string `json:"tier"`
	TotalDuels      int    `json:"total_duels"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Draws           int    `json:"draws"`
	BestStreak      int    `json:"best_streak"`
	FavoriteElement string `json:"favorite_element"`
}

func (Ranking) TableName() string { return "duel_rankings" }
