package storage

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/M1tsumi/arc-duels/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ArchiveDuel(rec *game.DuelRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) RecentDuels(userID int64, limit int) ([]game.DuelRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var recs []game.DuelRecord
	err := r.db.
		Where("challenger_id = ? OR challenged_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) HeadToHead(userA, userB int64, limit int) ([]game.DuelRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var recs []game.DuelRecord
	err := r.db.
		Where("(challenger_id = ? AND challenged_id = ?) OR (challenger_id = ? AND challenged_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpsertRanking(row *game.Ranking) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rating", "tier", "total_duels", "wins", "losses", "draws",
			"best_streak", "favorite_element", "updated_at",
		}),
	}).Create(row).Error
}

func (r *sqliteRepository) GetRanking(userID int64) (*game.Ranking, error) {
	var row game.Ranking
	if err := r.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetTopPlayers returns top N players ordered by rating desc, then wins desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Ranking, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []game.Ranking
	if err := r.db.Model(&game.Ranking{}).
		Order("rating DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sqliteRepository) RankOf(userID int64) (int, error) {
	row, err := r.GetRanking(userID)
	if err != nil {
		return 0, err
	}
	var ahead int64
	if err := r.db.Model(&game.Ranking{}).
		Where("rating > ? OR (rating = ? AND wins > ?)", row.Rating, row.Rating, row.Wins).
		Count(&ahead).Error; err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
