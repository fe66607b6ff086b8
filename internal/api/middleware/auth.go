package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const userLocalsKey = "user"

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	// Secret is the HS256 signing key
	Secret []byte
	// Audience is the expected audience claim; empty skips the check
	Audience string
	// SkipPaths bypass auth when the request path has one of these prefixes
	SkipPaths []string
}

// AuthenticatedUser is the subset of token claims handlers care about
type AuthenticatedUser struct {
	Sub string
	Aud []string
}

// AuthMiddleware returns a Fiber middleware for Bearer token authentication
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.SkipPaths {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		// Extract Bearer token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		var token string
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="launchpad-drafts"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid Bearer token",
			})
		}

		user, err := validateToken(token, cfg)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="launchpad-drafts", error="invalid_token"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Invalid token",
				"details": err.Error(),
			})
		}

		// Store authenticated user in context
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

func validateToken(token string, cfg AuthConfig) (*AuthenticatedUser, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if cfg.Audience != "" && !claims.VerifyAudience(cfg.Audience, true) {
		return nil, fmt.Errorf("invalid audience")
	}
	return &AuthenticatedUser{Sub: claims.Subject, Aud: claims.Audience}, nil
}

// GetAuthenticatedUser retrieves the authenticated user from Fiber context
// Returns nil if no user is found or if user is not of correct type
func GetAuthenticatedUser(c *fiber.Ctx) *AuthenticatedUser {
	user, ok := c.Locals(userLocalsKey).(*AuthenticatedUser)
	if !ok {
		return nil
	}
	return user
}
