// Package middleware provides shared request processing for handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxAccountID = "account_id"
	CtxUsername  = "username"
	CtxRole      = "role"
)

// Session roles carried in the JWT "role" claim. GM is granted when the
// auth store's account_access table reports a positive gmlevel at login
// time.
const (
	RolePlayer = "PLAYER"
	RoleGM     = "GM"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the account id, username and role claims into the
// request context. The provided secret must match the one used when
// issuing tokens. Handlers behind this middleware read the values via
// c.Get(middleware.CtxAccountID) and friends.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Only HS256 tokens issued by this service are accepted; a
			// token signed with any other method is rejected outright.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Numeric JSON claims decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(CtxAccountID, uint32(sub))
			if name, ok := claims["name"].(string); ok {
				c.Set(CtxUsername, name)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(CtxRole, role)
			}
			return next(c)
		}
	}
}

// AccountID extracts the authenticated account id stored by JWTAuth.
// It returns 0 when the request is unauthenticated.
func AccountID(c echo.Context) uint32 {
	if v, ok := c.Get(CtxAccountID).(uint32); ok {
		return v
	}
	return 0
}
