package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	appctx "github.com/piresc/shuttlefleet/internal/pkg/context"
	jwtpkg "github.com/piresc/shuttlefleet/internal/pkg/jwt"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
)

// ActorRoleKey is the echo context key holding the role of the authenticated actor
const ActorRoleKey = "actor_role"

// JWTAuthMiddleware creates a middleware for JWT authentication.
// The authenticated actor is stored on both the echo context and the request context.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c)
			if tokenString == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				logger.Debug("Token validation failed", logger.Err(err))
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(logger.ActorIDKey, claims.ActorID)
			c.Set(ActorRoleKey, claims.Role)

			ctx := appctx.WithActor(c.Request().Context(), appctx.Actor{ID: claims.ActorID, Role: claims.Role})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// bearerToken reads the token from the Authorization header, falling back to
// the access_token query parameter used by browser websocket clients
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return c.QueryParam("access_token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
