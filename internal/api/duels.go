package api

import (
	"net/http"

	"github.com/M1tsumi/arc-duels/internal/constants"
	"github.com/M1tsumi/arc-duels/internal/duel"
	"github.com/M1tsumi/arc-duels/internal/game"

	"github.com/gin-gonic/gin"
)

type ChallengeRequest struct {
	ChallengerID int64  `json:"challenger_id"`
	ChallengedID int64  `json:"challenged_id"`
	ChannelID    int64  `json:"channel_id"`
	Element      string `json:"element"`
}

type AcceptRequest struct {
	UserID  int64  `json:"user_id"`
	Element string `json:"element"`
}

type DeclineRequest struct {
	UserID int64 `json:"user_id"`
}

type TurnRequest struct {
	UserID int64 `json:"user_id"`
}

// Challenge opens a duel challenge against another player.
func (h *DuelHandler) Challenge(c *gin.Context) {
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.ChallengerID == 0 || req.ChallengedID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidUserID})
		return
	}

	d, err := h.duels.Challenge(req.ChallengerID, req.ChallengedID, req.ChannelID, game.Element(req.Element))
	if err != nil {
		switch err {
		case duel.ErrSelfChallenge, duel.ErrInvalidElement:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case duel.ErrChallengePending, duel.ErrSelfInDuel, duel.ErrOpponentInDuel:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"duel_id":    d.ID(),
		"expires_at": d.ExpiresAt,
		"phase":      d.Phase,
	})
}

// Accept accepts the caller's pending challenge and starts the battle.
func (h *DuelHandler) Accept(c *gin.Context) {
	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	d, err := h.duels.Accept(req.UserID, game.Element(req.Element))
	if err != nil {
		switch err {
		case duel.ErrInvalidElement:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case duel.ErrNoPendingChallenge:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
		case duel.ErrChallengeExpired:
			c.JSON(http.StatusGone, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		}
		return
	}
	c.JSON(http.StatusOK, duelView(d))
}

// Decline rejects the caller's pending challenge.
func (h *DuelHandler) Decline(c *gin.Context) {
	var req DeclineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	d, err := h.duels.Decline(req.UserID)
	if err != nil {
		switch err {
		case duel.ErrNoPendingChallenge:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
		case duel.ErrChallengeExpired:
			c.JSON(http.StatusGone, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "challenge declined",
		"challenger_id":          d.ChallengerID,
	})
}

// GetDuel returns the live state of an active duel.
func (h *DuelHandler) GetDuel(c *gin.Context) {
	d, err := h.duels.Get(c.Param("duelID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: duel.ErrDuelNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, duelView(d))
}

// Attack executes the caller's attack for the current turn.
func (h *DuelHandler) Attack(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	action, res, err := h.duels.Attack(c.Param("duelID"), req.UserID)
	if err != nil {
		writeBattleError(c, err)
		return
	}

	body := gin.H{"action": action}
	if res != nil {
		body["resolution"] = resolutionView(res)
	} else if d, getErr := h.duels.Get(c.Param("duelID")); getErr == nil {
		body["duel"] = duelView(d)
	}
	c.JSON(http.StatusOK, body)
}

// Forfeit concedes the duel to the opponent.
func (h *DuelHandler) Forfeit(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := h.duels.Forfeit(c.Param("duelID"), req.UserID)
	if err != nil {
		writeBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolution": resolutionView(res)})
}

func writeBattleError(c *gin.Context, err error) {
	switch err {
	case duel.ErrDuelNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
	case duel.ErrNotParticipant:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
	case duel.ErrNotYourTurn, duel.ErrNotBattlePhase, duel.ErrAlreadyResolved:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
	}
}

func duelView(d *game.DuelState) gin.H {
	return gin.H{
		"duel_id":        d.ID(),
		"phase":          d.Phase,
		"challenger_id":  d.ChallengerID,
		"challenged_id":  d.ChallengedID,
		"current_turn":   d.CurrentTurn,
		"turn_player_id": d.TurnPlayerID,
		"challenger":     d.ChallengerHero,
		"challenged":     d.ChallengedHero,
		"battle_log":     d.BattleLog,
	}
}

func resolutionView(res *duel.Resolution) gin.H {
	body := gin.H{
		"kind":  res.Kind,
		"turns": res.Result.Turns(),
		"challenger": gin.H{
			"rating_change":    res.Challenger.Rating.Delta,
			"new_rating":       res.Challenger.Rating.NewRating,
			"new_achievements": res.Challenger.NewAchievements,
		},
		"challenged": gin.H{
			"rating_change":    res.Challenged.Rating.Delta,
			"new_rating":       res.Challenged.Rating.NewRating,
			"new_achievements": res.Challenged.NewAchievements,
		},
	}
	if v, ok := res.Result.(game.Victory); ok {
		body["winner_id"] = v.WinnerID
		body["loser_id"] = v.LoserID
		body["forfeit"] = v.Forfeit
	}
	return body
}
