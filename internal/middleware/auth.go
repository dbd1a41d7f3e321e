package middleware

import (
	"log"

	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserLocalKey is the context key under which the authenticated identity is stored
const UserLocalKey = "auth_user"

// AuthUser validates the session cookie and stores the caller identity in the
// request context. Unauthenticated requests get 401 before any handler runs.
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, resp := resolveUser(c, cfg)
		if user == nil {
			return resp
		}
		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// AuthAdmin is AuthUser plus a profile role check. Authenticated callers
// without an admin profile get 403.
func AuthAdmin(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, resp := resolveUser(c, cfg)
		if user == nil {
			return resp
		}

		isAdmin, err := services.IsAdmin(db, user.ID)
		if err != nil {
			return utils.InternalErrorResponse(c, "authAdmin", err)
		}
		if !isAdmin {
			return utils.ForbiddenResponse(c)
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// GetAuthUser returns the identity placed in the context by the auth
// middleware, or nil when the route is unauthenticated
func GetAuthUser(c *fiber.Ctx) *types.AuthUser {
	user, _ := c.Locals(UserLocalKey).(*types.AuthUser)
	return user
}

// resolveUser validates the session cookie. On failure the 401 response is
// written and (nil, response error) is returned for the caller to propagate.
func resolveUser(c *fiber.Ctx, cfg *config.Config) (*types.AuthUser, error) {
	// The authorizer client needs the request host for its redirect URL, so
	// initialization is deferred to the first authenticated request.
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return nil, utils.InternalErrorResponse(c, "initAuthorizer", err)
		}
	}

	session := c.Cookies("cookie_session")
	if session == "" {
		return nil, utils.UnauthorizedResponse(c)
	}

	user, err := services.ValidateSession(session, nil)
	if err != nil {
		log.Printf("Session validation rejected: %v", err)
		return nil, utils.UnauthorizedResponse(c)
	}

	return user, nil
}
