package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/middleware"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/repository"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/service"
)

// ProfileHandler serves the launcher metadata record (level, streak,
// login-day counters) for the authenticated account.
type ProfileHandler struct {
	Coord *service.Coordinator
}

func NewProfileHandler(coord *service.Coordinator) *ProfileHandler {
	return &ProfileHandler{Coord: coord}
}

// Get returns the caller's launcher profile. The record is created on
// first login, so an authenticated caller without one indicates the
// upsert failed earlier; report it as missing rather than inventing an
// empty profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Coord.Profile(ctx, middleware.AccountID(c))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, profile)
	case errors.Is(err, repository.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
	case errors.Is(err, database.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "launcher store unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile query failed"})
	}
}
