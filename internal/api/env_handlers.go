package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// handlePublicEnv returns the configured public environment variables.
// Unset variables come back as empty strings.
func (s *APIServer) handlePublicEnv(c *fiber.Ctx) error {
	values := make(map[string]string, len(s.cfg.Server.PublicEnvKeys))
	for _, key := range s.cfg.Server.PublicEnvKeys {
		values[key] = os.Getenv(key)
	}
	return c.JSON(values)
}
