package handlers

import (
	"log"
	"time"

	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthCallbackHandler completes the login flow started at the Authorizer
type AuthCallbackHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Callback handles GET /auth/callback?code=...
// @Summary Auth callback
// @Description Exchange the authorization code for a session, set the session
// @Description cookie and redirect. Profile creation is best effort and never
// @Description fails the callback.
// @Tags Auth
// @Param code query string true "Authorization code"
// @Success 302
// @Router /auth/callback [get]
func (h *AuthCallbackHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Redirect(h.Cfg.LoginErrorURL, fiber.StatusFound)
	}

	session, err := services.ExchangeCode(h.Cfg, code)
	if err != nil {
		log.Printf("Auth code exchange failed: %v", err)
		return c.Redirect(h.Cfg.LoginErrorURL, fiber.StatusFound)
	}

	h.ensureProfile(session.AccessToken)

	c.Cookie(&fiber.Cookie{
		Name:     "cookie_session",
		Value:    session.AccessToken,
		Expires:  time.Now().Add(time.Duration(session.ExpiresIn) * time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(h.Cfg.PostLoginURL, fiber.StatusFound)
}

// ensureProfile upserts the profile row for the token holder when their email
// is confirmed. Every failure here is logged and swallowed, a missing profile
// must not break login.
func (h *AuthCallbackHandler) ensureProfile(accessToken string) {
	profile, err := services.FetchAuthProfile(h.Cfg, accessToken)
	if err != nil {
		log.Printf("Profile fetch after login failed: %v", err)
		return
	}

	if !profile.EmailVerified {
		log.Printf("Skipping profile creation for unverified email: %s", profile.Email)
		return
	}

	if err := services.UpsertProfile(h.DB, profile.ID, profile.Email, profile.PreferredUsername); err != nil {
		log.Printf("Profile upsert failed for user %s: %v", profile.ID, err)
	}
}
