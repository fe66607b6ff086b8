package handler

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rxtech-lab/launchpad-drafts/internal/api"
	"github.com/rxtech-lab/launchpad-drafts/internal/config"
	"github.com/rxtech-lab/launchpad-drafts/internal/logging"
	"github.com/rxtech-lab/launchpad-drafts/internal/mcp"
	"github.com/rxtech-lab/launchpad-drafts/internal/server"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

// vercelDBPath is the only writable location inside a Vercel function.
const vercelDBPath = "/tmp/launchpad-drafts.db"

// lazyServer builds the API server on first use. A failed build is not
// cached, so the next request tries again.
type lazyServer struct {
	mu     sync.Mutex
	server *api.APIServer
	init   func() (*api.APIServer, error)
}

func (l *lazyServer) get() (*api.APIServer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.server != nil {
		return l.server, nil
	}
	srv, err := l.init()
	if err != nil {
		return nil, err
	}
	l.server = srv
	return srv, nil
}

var apiServer = &lazyServer{init: initializeAPIServer}

// Handler is the main Vercel function handler
func Handler(w http.ResponseWriter, r *http.Request) {
	srv, err := apiServer.get()
	if err != nil {
		log.Printf("Failed to initialize API server: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	adaptor.FiberApp(srv.App())(w, r)
}

func initializeAPIServer() (*api.APIServer, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if os.Getenv("VERCEL") == "1" && os.Getenv("DB_PATH") == "" {
		cfg.Database.Path = vercelDBPath
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dbService, err := services.NewDBService(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := server.InitializeServices(dbService, logger)
	if err := server.RegisterHooks(svc.Hooks, server.InitializeHooks(svc, logger)...); err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("failed to register hooks: %w", err)
	}

	srv := api.NewAPIServer(cfg, svc.Drafts, svc.CandyMachines, svc.Deployments, logger)
	srv.SetMCPServer(mcp.NewMCPServer(svc.Drafts, svc.CandyMachines, svc.Deployments, cfg.Server.BaseURL, cfg.Server.Port))
	srv.EnableStreamableHttp()

	// Add a root route for Vercel
	srv.App().Get("/", func(c *fiber.Ctx) error {
		return c.JSON(map[string]any{
			"message": "Launchpad Drafts API",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	return srv, nil
}
