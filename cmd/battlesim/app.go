package main

import (
	"os"
	"path/filepath"

	"github.com/Orloaft/gridder-sub002/internal/config"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/logging"
	"github.com/Orloaft/gridder-sub002/internal/storage"
)

func loadConfigOrExit(path string, catalog *items.Catalog) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path, catalog)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a battlesim_config.json with a 'unit_list' array of units (id,role,hit_points,damage,speed,defense,...) and a 'waves' array of {enemies,formation}",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal("Failed to create database directory", err, logging.Fields{"dir": dir})
		}
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
