package api

import (
	"net/http"
	"strconv"

	"github.com/M1tsumi/arc-duels/internal/constants"
	"github.com/M1tsumi/arc-duels/internal/rating"

	"github.com/gin-gonic/gin"
)

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidUserID})
		return 0, false
	}
	return id, true
}

// PlayerStats returns a player's duel statistics, tier progress and
// achievement progress.
func (h *DuelHandler) PlayerStats(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	p, err := h.duels.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}

	stats := p.DuelStats
	tier := rating.TierFromRating(stats.DuelRating)
	c.JSON(http.StatusOK, gin.H{
		"user_id":       userID,
		"duel_stats":    stats,
		"tier":          rating.InfoFor(tier),
		"tier_progress": rating.ProgressFor(stats.DuelRating),
		"achievements":  rating.ProgressList(stats),
		"resources":     p.Resources,
	})
}

// PlayerHistory returns a player's archived duels, newest first.
func (h *DuelHandler) PlayerHistory(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	recs, err := h.repo.RecentDuels(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "duels": recs})
}

// Leaderboard returns the top players ordered by rating.
func (h *DuelHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.duels.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
