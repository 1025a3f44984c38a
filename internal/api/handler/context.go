package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/officecorner/hr-system/internal/api/middleware"
	"github.com/officecorner/hr-system/internal/core/domain"
)

// currentUserID extracts the authenticated account id injected by the Auth
// middleware. Empty means the route was mounted without Auth.
func currentUserID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}

func currentRole(c echo.Context) domain.Role {
	role, _ := c.Get(middleware.ContextRole).(string)
	return domain.Role(role)
}

func isAdmin(c echo.Context) bool {
	return currentRole(c) == domain.RoleAdministrator
}
