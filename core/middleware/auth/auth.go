package auth

import (
	"crypto/subtle"
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Header carries the API key.
const Header = "X-API-Key"

// Config holds the settings of the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
	// Public lists paths served without a key.
	Public []string
}

// New returns a middleware rejecting requests without a matching API key.
func New(cfg Config) fiber.Handler {
	expected := []byte(cfg.ApiKey)
	return func(c *fiber.Ctx) error {
		if len(expected) == 0 || slices.Contains(cfg.Public, c.Path()) {
			return c.Next()
		}
		got := c.Get(Header)
		if got == "" {
			got = c.Query("api_key")
		}
		if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}
}
