package hooks

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
	"go.uber.org/zap"
)

// DraftCleanupHook removes the draft a collection was created from once the
// collection is deployed.
type DraftCleanupHook struct {
	draftService services.DraftService
	logger       *zap.Logger
}

// CanHandle implements DeploymentHook.
func (d *DraftCleanupHook) CanHandle(status models.DeploymentStatus) bool {
	return status == models.DeploymentStatusDeployed
}

// OnStatusChanged implements DeploymentHook.
func (d *DraftCleanupHook) OnStatusChanged(ctx context.Context, previous models.DeploymentStatus, candyMachine models.CandyMachine) error {
	if candyMachine.DraftID == nil || *candyMachine.DraftID == "" {
		return nil
	}

	if err := d.draftService.Delete(ctx, *candyMachine.DraftID); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", *candyMachine.DraftID, err)
	}

	d.logger.Info("deleted draft of deployed collection",
		zap.String("draft_id", *candyMachine.DraftID),
		zap.String("candy_machine_id", candyMachine.ID))
	return nil
}

func NewDraftCleanupHook(draftService services.DraftService, logger *zap.Logger) services.DeploymentHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftCleanupHook{
		draftService: draftService,
		logger:       logger.Named("draft_cleanup"),
	}
}
