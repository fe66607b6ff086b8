package api

import (
	"github.com/gofiber/fiber/v2"
)

// handleOAuthProtectedResource serves the protected resource metadata MCP
// clients read before asking an authorization server for a token.
func (s *APIServer) handleOAuthProtectedResource(c *fiber.Ctx) error {
	resource := s.cfg.Server.BaseURL
	if resource == "" {
		resource = c.BaseURL()
	}

	authorizationServers := s.cfg.Auth.AuthorizationServers
	if authorizationServers == nil {
		authorizationServers = []string{}
	}

	return c.JSON(map[string]any{
		"authorization_servers":    authorizationServers,
		"bearer_methods_supported": []string{"header"},
		"resource":                 resource,
		"scopes_supported":         []string{},
	})
}
