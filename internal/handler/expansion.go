package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/config"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/expansion"
)

// ExpansionHandler exposes the static expansion/emulator configuration
// matrix for launcher UI population.
type ExpansionHandler struct {
	Cfg      config.Config
	Registry *expansion.Registry
}

func NewExpansionHandler(cfg config.Config, reg *expansion.Registry) *ExpansionHandler {
	return &ExpansionHandler{Cfg: cfg, Registry: reg}
}

// ListExpansions returns the supported expansion display names in
// declared order.
func (h *ExpansionHandler) ListExpansions(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"expansions": h.Registry.SupportedExpansions()})
}

// ListEmulators returns the supported emulator display names in
// declared order.
func (h *ExpansionHandler) ListEmulators(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"emulators": h.Registry.SupportedEmulators()})
}

// GetConfig returns the configuration bundle for the requested
// ?expansion=&emulator= pair, or for this deployment's configured pair
// when the parameters are absent. Unknown identifiers resolve to the
// documented default entry; the lookup never fails.
func (h *ExpansionHandler) GetConfig(c echo.Context) error {
	exp := h.Cfg.Expansion
	emu := h.Cfg.Emulator
	if v, ok := expansion.ParseExpansion(c.QueryParam("expansion")); ok {
		exp = v
	}
	if v, ok := expansion.ParseEmulator(c.QueryParam("emulator")); ok {
		emu = v
	}

	cfg := h.Registry.GetConfig(exp, emu)
	return c.JSON(http.StatusOK, echo.Map{
		"expansion": exp.String(),
		"emulator":  emu.String(),
		"config":    cfg,
	})
}
