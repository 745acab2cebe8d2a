package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-zero user id
// and a non-empty role prove the middleware ran.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)
	if userID == 0 || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)

	return ports.Caller{
		UserID:   userID,
		Username: username,
		Role:     domain.Role(role),
	}, nil
}
