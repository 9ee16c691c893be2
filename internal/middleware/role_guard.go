package middleware

import (
	"net/http"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// RequireRole resolves the caller's groups from the directory and
// rejects callers missing the named role.
func RequireRole(groups repository.GroupRepository, roleName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, detailJSON("unauthorized"))
			}

			names, err := groups.ListNamesByUserID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, detailJSON("internal error"))
			}

			for _, n := range names {
				if n == roleName {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, detailJSON("forbidden"))
		}
	}
}
