package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// Context keys populated by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextStatus = "status"
)

// Auth validates the JWT and injects the id, role and status claims into
// context. Tokens carrying a non-approved status are refused: approval may
// have been revoked after the token was issued, and a pending account never
// holds a token for protected routes in the first place.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			status, _ := claims["status"].(string)
			if status != string(domain.StatusApproved) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "account is not active",
					"code":  "ACCOUNT_INACTIVE",
				})
			}

			c.Set(ContextUserID, claims["id"])
			c.Set(ContextRole, claims["role"])
			c.Set(ContextStatus, status)

			return next(c)
		}
	}
}
