package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/middleware"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/repository"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/service"
)

// CharacterHandler serves the character list and the unstuck
// operations against the emulator's characters store.
type CharacterHandler struct {
	Coord *service.Coordinator
}

func NewCharacterHandler(coord *service.Coordinator) *CharacterHandler {
	return &CharacterHandler{Coord: coord}
}

// List returns the authenticated account's characters. An empty list
// is a 200 with an empty array; an unreachable characters store is a
// 503, so the launcher UI can tell the difference.
func (h *CharacterHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	chars, err := h.Coord.ListCharacters(ctx, middleware.AccountID(c))
	if err != nil {
		log.Printf("characters: list failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "characters store unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"characters": chars})
}

// Unstuck teleports one of the caller's characters to its home-bind
// location (or the configured fallback). Characters of other accounts
// are rejected with 403.
func (h *CharacterHandler) Unstuck(c echo.Context) error {
	guid, err := parseGUID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	return h.respondUnstuck(c, guid, h.Coord.UnstuckCharacter(ctx, guid, middleware.AccountID(c)))
}

// UnstuckAny is the GM variant: any character, no ownership check. The
// route is gated by RequireRole(GM).
func (h *CharacterHandler) UnstuckAny(c echo.Context) error {
	guid, err := parseGUID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	return h.respondUnstuck(c, guid, h.Coord.UnstuckAnyCharacter(ctx, guid))
}

func (h *CharacterHandler) respondUnstuck(c echo.Context, guid uint64, err error) error {
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"guid": guid, "status": "teleported"})
	case errors.Is(err, repository.ErrCharacterNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "character not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, database.ErrStoreUnavailable):
		log.Printf("characters: unstuck %d failed: %v", guid, err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "characters store unavailable"})
	default:
		log.Printf("characters: unstuck %d failed: %v", guid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unstuck failed"})
	}
}

func parseGUID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("guid"), 10, 64)
}
