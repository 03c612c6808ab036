package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as uncacheable. Every API response is computed from a
// fresh upstream snapshot and must not be served stale by intermediaries.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
