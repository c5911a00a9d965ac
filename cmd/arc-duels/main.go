package main

import (
	"math/rand"
	"path/filepath"
	"time"

	"github.com/M1tsumi/arc-duels/internal/api"
	"github.com/M1tsumi/arc-duels/internal/config"
	"github.com/M1tsumi/arc-duels/internal/constants"
	"github.com/M1tsumi/arc-duels/internal/duel"
	"github.com/M1tsumi/arc-duels/internal/hero"
	"github.com/M1tsumi/arc-duels/internal/logging"
	"github.com/M1tsumi/arc-duels/internal/profile"
	"github.com/M1tsumi/arc-duels/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("invalid environment", err, nil)
	}
	cfg, err := config.Load(envCfg)
	if err != nil {
		logging.Fatal("missing or invalid duel configuration", err, logging.Fields{
			"config_path": envCfg.ConfigPath,
			"hint":        "provide a duel_config.json with optional 'combat', 'elements' and 'server' sections, or unset " + constants.EnvConfigPath,
		})
	}
	logging.SetLevel(cfg.LogLevel)

	// The balance file is the source of truth for element base stats.
	hero.DefaultBaseStats = cfg.BaseStats

	db, err := storage.OpenAndMigrate(cfg.Database)
	if err != nil {
		logging.Fatal("failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	profiles, err := profile.NewFileStore(filepath.Join(cfg.DataDir, "profiles"))
	if err != nil {
		logging.Fatal("failed to initialize profile store", err, nil)
	}

	manager := duel.NewManager(cfg.Combat, rand.New(rand.NewSource(time.Now().UnixNano())))
	duels := duel.NewService(manager, profiles, repo)
	handler := api.NewDuelHandler(duels, repo)

	// Background sweep: expired challenges are evicted lazily on access,
	// this catches the ones nobody touches again.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1m", duels.Sweep); err != nil {
		logging.Fatal("failed to schedule duel sweep", err, nil)
	}
	sweeper.Start()
	defer sweeper.Stop()

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	addr := cfg.ServerAddress
	logging.Info("server started", logging.Fields{"addr": addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("failed to start server", err, nil)
	}
}
