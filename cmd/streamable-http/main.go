package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
	"github.com/rxtech-lab/launchpad-drafts/internal/api"
	"github.com/rxtech-lab/launchpad-drafts/internal/config"
	"github.com/rxtech-lab/launchpad-drafts/internal/logging"
	"github.com/rxtech-lab/launchpad-drafts/internal/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

func configureAndStartServer(cfg *config.Config, dbService services.DBService, logger *zap.Logger) (*api.APIServer, int, error) {
	svc := server.InitializeServices(dbService, logger)
	if err := server.RegisterHooks(svc.Hooks, server.InitializeHooks(svc, logger)...); err != nil {
		return nil, 0, fmt.Errorf("failed to register hooks: %w", err)
	}

	mcpServer := mcp.NewMCPServer(svc.Drafts, svc.CandyMachines, svc.Deployments, cfg.Server.BaseURL, cfg.Server.Port)
	apiServer := api.NewAPIServer(cfg, svc.Drafts, svc.CandyMachines, svc.Deployments, logger)
	apiServer.SetMCPServer(mcpServer)
	apiServer.EnableStreamableHttp()

	port := cfg.Server.Port
	startedPort, err := apiServer.Start(&port)
	if err != nil {
		return nil, 0, err
	}
	return apiServer, startedPort, nil
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync() //nolint:errcheck

	dbService, err := services.NewDBService(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database service", zap.Error(err))
	}
	defer dbService.Close()

	apiServer, startedPort, err := configureAndStartServer(cfg, dbService, logger)
	if err != nil {
		logger.Fatal("Failed to start API server", zap.Error(err))
	}
	logger.Info("API server started", zap.Int("port", startedPort), zap.String("driver", cfg.Database.Driver))

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down server")
	if err := apiServer.Shutdown(); err != nil {
		logger.Error("Error shutting down API server", zap.Error(err))
	}
	logger.Info("Server shut down successfully")
}
