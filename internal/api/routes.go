package api

import (
	"net/http"

	"github.com/M1tsumi/arc-duels/internal/constants"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every duel endpoint onto the router under the API
// prefix.
func RegisterRoutes(router *gin.Engine, handler *DuelHandler) {
	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.POST(constants.RouteChallenge, handler.Challenge)
		apiRoutes.POST(constants.RouteAccept, handler.Accept)
		apiRoutes.POST(constants.RouteDecline, handler.Decline)
		apiRoutes.GET(constants.RouteDuelByID, handler.GetDuel)
		apiRoutes.POST(constants.RouteDuelAttack, handler.Attack)
		apiRoutes.POST(constants.RouteDuelForfeit, handler.Forfeit)
		apiRoutes.GET(constants.RoutePlayerStats, handler.PlayerStats)
		apiRoutes.GET(constants.RoutePlayerHistory, handler.PlayerHistory)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
	}
}
