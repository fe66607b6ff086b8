package api

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rxtech-lab/launchpad-drafts/internal/api/middleware"
	"github.com/rxtech-lab/launchpad-drafts/internal/config"
	"github.com/rxtech-lab/launchpad-drafts/internal/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

// maxUploadBytes bounds a multipart draft upload.
const maxUploadBytes = 64 << 20

type APIServer struct {
	app                 *fiber.App
	cfg                 *config.Config
	draftService        services.DraftService
	candyMachineService services.CandyMachineService
	deploymentService   services.DeploymentService
	mcpServer           *mcp.MCPServer
	logger              *zap.Logger
	port                int
}

func NewAPIServer(cfg *config.Config, draftService services.DraftService, candyMachineService services.CandyMachineService, deploymentService services.DeploymentService, log *zap.Logger) *APIServer {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             maxUploadBytes,
		ErrorHandler:          errorHandler(log),
	})

	// Add middleware
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Output:     zap.NewStdLog(log.Named("http")).Writer(),
	}))

	server := &APIServer{
		app:                 app,
		cfg:                 cfg,
		draftService:        draftService,
		candyMachineService: candyMachineService,
		deploymentService:   deploymentService,
		logger:              log.Named("api"),
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	if s.cfg.Auth.JWTSecret != "" {
		s.app.Get("/.well-known/oauth-protected-resource", s.handleOAuthProtectedResource)
	}

	api := s.app.Group("/api")
	if s.cfg.Auth.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(middleware.AuthConfig{
			Secret:    []byte(s.cfg.Auth.JWTSecret),
			Audience:  s.cfg.Auth.Audience,
			SkipPaths: []string{"/api/env"},
		}))
	}

	api.Get("/env", s.handlePublicEnv)

	// Drafts
	api.Post("/drafts", s.handleSaveDraft)
	api.Get("/drafts", s.handleListDrafts)
	api.Get("/drafts/:id", s.handleGetDraft)
	api.Patch("/drafts/:id", s.handleUpdateDraft)
	api.Delete("/drafts/:id", s.handleDeleteDraft)
	api.Get("/drafts/:id/collection-image", s.handleGetCollectionImage)
	api.Get("/drafts/:id/nft-assets/:index", s.handleGetNFTAsset)

	// Candy machines
	api.Post("/candy-machines", s.handleSaveCandyMachine)
	api.Get("/candy-machines", s.handleListCandyMachines)
	api.Get("/candy-machines/:id", s.handleGetCandyMachine)
	api.Patch("/candy-machines/:id", s.handleUpdateCandyMachine)
	api.Delete("/candy-machines/:id", s.handleDeleteCandyMachine)
}

// EnableStreamableHttp mounts the MCP streamable HTTP endpoint at /mcp.
// SetMCPServer must be called first.
func (s *APIServer) EnableStreamableHttp() {
	if s.mcpServer == nil {
		s.logger.Warn("streamable http requested without an MCP server")
		return
	}
	s.app.All("/mcp", adaptor.HTTPHandler(s.mcpServer.StreamableHTTPServer()))
}

// Start starts the server on the given port, or on a random available port when nil
func (s *APIServer) Start(port *int) (int, error) {
	var listenPort int
	if port != nil {
		listenPort = *port
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", listenPort))
	if err != nil {
		return 0, fmt.Errorf("failed to listen: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := s.app.Listener(listener); err != nil {
			s.logger.Error("API server stopped", zap.Error(err))
		}
	}()

	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// App exposes the fiber app for in-process requests.
func (s *APIServer) App() *fiber.App {
	return s.app
}

// SetMCPServer sets the MCP server instance for accessing MCP methods
func (s *APIServer) SetMCPServer(mcpServer *mcp.MCPServer) {
	s.mcpServer = mcpServer
}

func (s *APIServer) GetMCPServer() *mcp.MCPServer {
	return s.mcpServer
}
