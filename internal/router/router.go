// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/handler"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/middleware"
)

// Handlers collects everything the router needs to wire the API.
type Handlers struct {
	Auth       *handler.AuthHandler
	Characters *handler.CharacterHandler
	Profile    *handler.ProfileHandler
	Expansions *handler.ExpansionHandler
	Stats      *handler.StatsHandler
	LoginLimit echo.MiddlewareFunc
	JWTSecret  string
}

// Register wires every route onto the provided Echo instance.
// Unauthenticated operations live under /v1/auth and the public browse
// endpoints; everything session-bound lives under /v1 behind JWTAuth;
// GM-only operations additionally pass RequireRole.
func Register(e *echo.Echo, h Handlers) {
	// Liveness for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Login is the only route behind the brute-force limiter.
	a := e.Group("/v1/auth")
	a.POST("/login", h.Auth.Login, h.LoginLimit)
	a.POST("/refresh", h.Auth.Refresh)

	// Public endpoints for UI population before any login happens.
	e.GET("/v1/expansions", h.Expansions.ListExpansions)
	e.GET("/v1/emulators", h.Expansions.ListEmulators)
	e.GET("/v1/expansions/config", h.Expansions.GetConfig)
	e.GET("/v1/stats", h.Stats.Get)

	// Session-bound endpoints.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(h.JWTSecret))
	auth.GET("/me", h.Auth.Me)
	auth.GET("/profile", h.Profile.Get)
	auth.GET("/characters", h.Characters.List)
	auth.POST("/characters/:guid/unstuck", h.Characters.Unstuck)

	// GM-only operations.
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(middleware.RoleGM))
	admin.POST("/characters/:guid/unstuck", h.Characters.UnstuckAny)
}
