package services

import (
	"context"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

// DeploymentHook is used to perform actions when a candy machine's deployment status changes
type DeploymentHook interface {
	// CanHandle is used to check if the hook cares about the new status
	CanHandle(status models.DeploymentStatus) bool
	// OnStatusChanged is called after the new status has been stored
	OnStatusChanged(ctx context.Context, previous models.DeploymentStatus, candyMachine models.CandyMachine) error
}
