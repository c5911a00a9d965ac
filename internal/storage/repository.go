package storage

import (
	"github.com/M1tsumi/arc-duels/internal/game"
)

type Repository interface {
	// ArchiveDuel appends one completed duel to the duel archive.
	ArchiveDuel(rec *game.DuelRecord) error
	// RecentDuels returns the user's most recent archived duels, newest
	// first.
	RecentDuels(userID int64, limit int) ([]game.DuelRecord, error)
	// HeadToHead returns archived duels between two specific users, newest
	// first.
	HeadToHead(userA, userB int64, limit int) ([]game.DuelRecord, error)
	// UpsertRanking inserts or refreshes a player's leaderboard row.
	UpsertRanking(r *game.Ranking) error
	// GetRanking returns a player's leaderboard row, or gorm.ErrRecordNotFound.
	GetRanking(userID int64) (*game.Ranking, error)
	// GetTopPlayers returns the leaderboard ordered by rating.
	GetTopPlayers(limit int) ([]game.Ranking, error)
	// RankOf returns a player's 1-based position on the leaderboard.
	RankOf(userID int64) (int, error)
}
