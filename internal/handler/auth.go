package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/auth"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/config"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/middleware"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/queue"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/repository"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/service"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/utils"
)

// AuthHandler bundles dependencies for the login endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
	Sessions *repository.SessionRepo
	Coord    *service.Coordinator
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, s *repository.SessionRepo, coord *service.Coordinator) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Sessions: s, Coord: coord}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type accountPart struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
type authResp struct {
	Account accountPart `json:"account"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// Login verifies game-account credentials and opens a launcher session.
// A rejected password and an unknown username produce the same 401 body
// so the endpoint cannot be used to enumerate accounts. A store outage
// is a 503, never a 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := auth.Authenticate(ctx, req.Username, req.Password, h.Accounts)
	if err != nil {
		log.Printf("login: credential lookup failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "auth store unavailable"})
	}
	switch res.Status {
	case auth.InvalidInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	case auth.NotFound, auth.Rejected:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Post-login side effects: online flag + last_login in the auth
	// store, then the daily launcher upsert. A failure here means the
	// session state would be inconsistent, so the login is not issued.
	if err := h.Coord.OnAuthenticated(ctx, res.AccountID, res.Username, c.RealIP()); err != nil {
		if errors.Is(err, database.ErrStoreUnavailable) {
			log.Printf("login: post-login effects failed: %v", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login bookkeeping failed"})
	}

	role := h.resolveRole(ctx, res.AccountID)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, res.AccountID, res.Username, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Sessions.StoreRefresh(ctx, res.AccountID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	// Fan the login out to the broker off the request path; a broker
	// outage must not fail the login.
	event := queue.AccountAuthenticatedEvent{
		AccountID: res.AccountID,
		Username:  res.Username,
		Expansion: h.Cfg.Expansion.String(),
		Emulator:  h.Cfg.Emulator.String(),
		SourceIP:  c.RealIP(),
		LoginAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = service.PublishAccountAuthenticated(context.Background(), h.Cfg.AMQPURL, event) }()

	return c.JSON(http.StatusOK, authResp{
		Account: accountPart{ID: res.AccountID, Username: res.Username, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Refresh exchanges a valid refresh token for a new token pair. The
// presented token is revoked; refresh tokens are single-use.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accountID, err := h.Sessions.ConsumeRefresh(ctx, utils.HashRefreshRaw(req.RefreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}

	// The canonical username lives on the launcher profile, refreshed
	// at every login.
	profile, err := h.Coord.Profile(ctx, accountID)
	if err != nil {
		if errors.Is(err, database.ErrStoreUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	role := h.resolveRole(ctx, accountID)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, profile.Username, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Sessions.StoreRefresh(ctx, accountID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Account: accountPart{ID: accountID, Username: profile.Username, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Me returns the authenticated session's identity from the token claims.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get(middleware.CtxUsername).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	return c.JSON(http.StatusOK, accountPart{
		ID:       middleware.AccountID(c),
		Username: username,
		Role:     role,
	})
}

// resolveRole promotes the session to GM when the auth store reports a
// positive gmlevel. Lookup failures demote to PLAYER rather than
// failing the login.
func (h *AuthHandler) resolveRole(ctx context.Context, accountID uint32) string {
	level, err := h.Accounts.GMLevel(ctx, accountID)
	if err != nil {
		log.Printf("login: gm level lookup failed for account %d: %v", accountID, err)
		return middleware.RolePlayer
	}
	if level > 0 {
		return middleware.RoleGM
	}
	return middleware.RolePlayer
}
