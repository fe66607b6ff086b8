package server

import (
	"github.com/rxtech-lab/launchpad-drafts/internal/hooks"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

// Services bundles the stores and flows the binaries wire into the API and MCP servers.
type Services struct {
	Drafts        services.DraftService
	CandyMachines services.CandyMachineService
	Deployments   services.DeploymentService
	Hooks         services.HookService
}

func InitializeServices(db services.DBService, logger *zap.Logger) *Services {
	draftService := services.NewDraftService(db, logger)
	candyMachineService := services.NewCandyMachineService(db, logger)
	hookService := services.NewHookService()
	deploymentService := services.NewDeploymentService(candyMachineService, hookService, logger)

	return &Services{
		Drafts:        draftService,
		CandyMachines: candyMachineService,
		Deployments:   deploymentService,
		Hooks:         hookService,
	}
}

func InitializeHooks(svc *Services, logger *zap.Logger) []services.DeploymentHook {
	return []services.DeploymentHook{
		hooks.NewDraftCleanupHook(svc.Drafts, logger),
	}
}

func RegisterHooks(hookService services.HookService, deploymentHooks ...services.DeploymentHook) error {
	for _, hook := range deploymentHooks {
		if err := hookService.AddHook(hook); err != nil {
			return err
		}
	}
	return nil
}
