package constants

// Centralized constants for env keys, routes and JSON response keys.
const (
	// Environment variable keys
	EnvConfigPath = "ARC_CONFIG"
	EnvDataDir    = "ARC_DATA_DIR"
	EnvDatabase   = "ARC_DB"
	EnvListenAddr = "ARC_ADDR"
	EnvLogLevel   = "ARC_LOG_LEVEL"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteHealth        = "/healthz"
	RouteVersion       = "/version"
	RouteChallenge     = "/duels/challenge"
	RouteAccept        = "/duels/accept"
	RouteDecline       = "/duels/decline"
	RouteDuelByID      = "/duels/:duelID"
	RouteDuelAttack    = "/duels/:duelID/attack"
	RouteDuelForfeit   = "/duels/:duelID/forfeit"
	RoutePlayerStats   = "/players/:userID/stats"
	RoutePlayerHistory = "/players/:userID/history"
	RouteLeaderboard   = "/leaderboard"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// User-facing error messages returned by the API.
const (
	ErrInvalidRequest = "invalid request"
	ErrInvalidUserID  = "invalid user id"
	ErrInternal       = "internal error"
)
