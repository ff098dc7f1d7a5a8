package constants

// Centralized constants for env keys, routes and API field names.
const (
	// Environment variable keys
	EnvConfigPath = "BATTLESIM_CONFIG"
	EnvDBPath     = "BATTLESIM_DB"

	// Defaults
	DefaultConfigPath = "./battlesim_config.json"
	DefaultDBPath     = "./data/battlesim.db"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteVersion        = "/version"
	RouteUnits          = "/units"
	RouteItems          = "/items"
	RouteBattles        = "/battles"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattlePlayback = "/battles/:battleID/playback"
	RouteLeaderboard    = "/leaderboard"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedRunBattle        = "Failed to run battle"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedDecodeLog        = "Failed to decode battle log"
	ErrUnknownHero            = "Unknown hero id: %s"
	ErrNoHeroesSelected       = "At least one hero is required"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldSeed     = "seed"
	LogFieldWinner   = "winner"
	LogFieldAddr     = "addr"
	LogFieldTicks    = "ticks"
	LogFieldEvents   = "events"
)
