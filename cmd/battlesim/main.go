package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Orloaft/gridder-sub002/internal/api"
	"github.com/Orloaft/gridder-sub002/internal/constants"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/logging"
	"github.com/Orloaft/gridder-sub002/internal/service"
)

func main() {
	// Config path may be provided via BATTLESIM_CONFIG or defaults to
	// ./battlesim_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	catalog := items.DefaultCatalog()
	cfg := loadConfigOrExit(configPath, catalog)

	// Allow the DB path to be configured via BATTLESIM_DB. Default to a
	// data/ directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	repo := createRepositoryOrExit(dbPath)

	sim := service.NewSimulator(repo, cfg, catalog)
	handler := api.NewBattleHandler(sim, repo, cfg, catalog)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteUnits, handler.ListUnits)
		apiRoutes.GET(constants.RouteItems, handler.ListItems)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		apiRoutes.POST(constants.RouteBattles, handler.RunBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattlePlayback, handler.StreamBattle)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
