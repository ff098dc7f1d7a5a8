package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Orloaft/gridder-sub002/internal/config"
	"github.com/Orloaft/gridder-sub002/internal/constants"
	"github.com/Orloaft/gridder-sub002/internal/items"
	"github.com/Orloaft/gridder-sub002/internal/service"
	"github.com/Orloaft/gridder-sub002/internal/storage"
)

// BattleHandler exposes the simulation service and stored battle
// records over HTTP.
type BattleHandler struct {
	sim     *service.Simulator
	repo    storage.Repository
	cfg     *config.LoadedConfig
	catalog *items.Catalog
}

func NewBattleHandler(sim *service.Simulator, repo storage.Repository, cfg *config.LoadedConfig, catalog *items.Catalog) *BattleHandler {
	return &BattleHandler{sim: sim, repo: repo, cfg: cfg, catalog: catalog}
}

// ListUnits returns the configured hero and enemy roster.
func (h *BattleHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"heroes":  h.cfg.Heroes,
		"enemies": h.cfg.Enemies,
	})
}

// ListItems returns the item catalog.
func (h *BattleHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// RunBattle simulates a battle for the requested roster and returns
// the stored record id together with the full action log.
func (h *BattleHandler) RunBattle(c *gin.Context) {
	var req service.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.sim.Run(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoHeroes):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNoHeroesSelected})
		case errors.Is(err, service.ErrUnknownHero):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunBattle})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBattle returns a stored battle with its decoded action log.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("battleID"))
	rec, err := h.repo.GetBattleByPublicID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	events, err := rec.DecodeEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedDecodeLog})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle_id": rec.PublicID,
		"seed":      rec.Seed,
		"waves":     rec.Waves,
		"winner":    rec.Winner,
		"ticks":     rec.Ticks,
		"heroes":    strings.Split(rec.HeroList, ","),
		"events":    events,
	})
}

// ListBattles returns recent battle records without their logs.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	recs, err := h.repo.ListRecentBattles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// ListLeaderboard returns the top heroes by wins (desc).
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.GetTopHeroes(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
