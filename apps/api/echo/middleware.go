package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ctxUserOrAdminMiddleware lets through the owner of the `:userId` path param and admins.
// Anyone else gets a 404 so that user ids cannot be probed.
func ctxUserOrAdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if ctx.Param("userId") == claims.Subject || claims.IsAdmin() {
				return next(ctx)
			}
			return errHttpNotFound
		}
	}
}
