package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/launchpad-drafts/internal/api"
	"github.com/rxtech-lab/launchpad-drafts/internal/config"
	"github.com/rxtech-lab/launchpad-drafts/internal/logging"
	"github.com/rxtech-lab/launchpad-drafts/internal/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func configureAndStartServer(cfg *config.Config, dbService services.DBService, logger *zap.Logger) (*api.APIServer, int, error) {
	svc := server.InitializeServices(dbService, logger)
	if err := server.RegisterHooks(svc.Hooks, server.InitializeHooks(svc, logger)...); err != nil {
		return nil, 0, fmt.Errorf("failed to register hooks: %w", err)
	}

	// The local API is only reachable from this machine, so it runs without auth.
	localCfg := *cfg
	localCfg.Auth = config.AuthConfig{}

	apiServer := api.NewAPIServer(&localCfg, svc.Drafts, svc.CandyMachines, svc.Deployments, logger)

	// Start API server first to get the actual port
	startedPort, err := apiServer.Start(nil)
	if err != nil {
		return nil, 0, err
	}

	mcpServer := mcp.NewMCPServer(svc.Drafts, svc.CandyMachines, svc.Deployments, cfg.Server.BaseURL, startedPort)
	apiServer.SetMCPServer(mcpServer)

	return apiServer, startedPort, nil
}

func main() {
	var showVersion = flag.Bool("version", false, "Show version information")
	var showHelp = flag.Bool("help", false, "Show help information")
	var enableLog = flag.Bool("log", false, "Enable logging output")
	flag.Parse()

	if *showVersion {
		fmt.Fprintf(os.Stderr, "Launchpad Drafts MCP Server\nVersion: %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildTime)
		return
	}

	if *showHelp {
		fmt.Fprintf(os.Stderr, "Launchpad Drafts MCP Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --version    Show version information\n")
		fmt.Fprintf(os.Stderr, "  --help       Show this help message\n")
		fmt.Fprintf(os.Stderr, "  --log        Enable logging output\n\n")
		fmt.Fprintf(os.Stderr, "Database: ~/launchpad-drafts.db (SQLite) unless DB_PATH or CONFIG_FILE says otherwise\n")
		fmt.Fprintf(os.Stderr, "Web Interface: http://localhost:[random-port]\n")
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// Logging is off by default so nothing competes with the MCP stream.
	logger := zap.NewNop()
	if *enableLog {
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync() //nolint:errcheck

	dbService, err := services.NewDBService(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	apiServer, port, err := configureAndStartServer(cfg, dbService, logger)
	if err != nil {
		logger.Fatal("Failed to start API server", zap.Error(err))
	}
	logger.Info("API server started", zap.Int("port", port))

	go func() {
		if err := apiServer.GetMCPServer().Start(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to start MCP server:", err)
			os.Exit(1)
		}
	}()

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down servers")
	if err := apiServer.Shutdown(); err != nil {
		logger.Error("Error shutting down API server", zap.Error(err))
	}
	logger.Info("Servers shut down successfully")
}
