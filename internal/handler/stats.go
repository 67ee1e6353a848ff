package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/repository"
)

const (
	statsCacheKey = "stats:server"
	statsCacheTTL = 30 * time.Second
)

// StatsHandler serves the public server-stats snapshot. The dashboard
// polls this endpoint, so the snapshot is cached in Redis for a short
// TTL to keep the polling load off the characters store. A nil Redis
// client disables caching; every request then hits the stores.
type StatsHandler struct {
	Stats *repository.StatsRepo
	Redis *redis.Client
}

func NewStatsHandler(stats *repository.StatsRepo, rdb *redis.Client) *StatsHandler {
	return &StatsHandler{Stats: stats, Redis: rdb}
}

// Get returns online counts, faction split and realm uptime.
func (h *StatsHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.Redis != nil {
		if raw, err := h.Redis.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached model.ServerStats
			if json.Unmarshal(raw, &cached) == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSON(http.StatusOK, cached)
			}
		}
	}

	stats, err := h.Stats.ServerStats(ctx)
	if err != nil {
		log.Printf("stats: query failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "stats unavailable"})
	}

	if h.Redis != nil {
		if raw, err := json.Marshal(stats); err == nil {
			// Best effort; a cache write failure only costs the next
			// caller a store round-trip.
			_ = h.Redis.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err()
		}
	}

	return c.JSON(http.StatusOK, stats)
}
