package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/zoezi/core/user"
)

// softJWTMiddleware authenticates the caller when an Authorization header is
// present and lets anonymous requests through untouched.
func softJWTMiddleware() echo.MiddlewareFunc {
	jwt := middleware.JWTWithConfig(appJWTConfig)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		authed := jwt(next)
		return func(ctx echo.Context) error {
			if ctx.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(ctx)
			}
			return authed(ctx)
		}
	}
}

// adminMiddleware restricts a route to callers whose highest role ranks at
// least admin.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if user.MaxRolePriority(claims.Roles) < user.RolePriority(user.RoleAdmin) {
				return echo.ErrForbidden
			}
			return next(ctx)
		}
	}
}
