package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/restbase/internal/apierror"
	"github.com/mdouchement/restbase/internal/model"
)

// RequireRole rejects with a 403 the requests of users not having the given role.
// It must be installed after the Session middleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(CurrentUserContextKey).(*model.User)
			if !ok {
				return apierror.Unauthorized("Invalid login credentials.")
			}

			if user.Role != role {
				return apierror.Forbidden("Insufficient role.")
			}
			return next(c)
		}
	}
}
