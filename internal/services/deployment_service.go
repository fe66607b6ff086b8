package services

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/utils"
	"go.uber.org/zap"
)

// DeploymentService is the orchestration side of candy machine records. It
// checks chain references and status transitions before handing records to
// CandyMachineService, and runs deployment hooks after status changes.
type DeploymentService interface {
	Save(ctx context.Context, candyMachine models.CandyMachine) (*models.CandyMachine, error)
	Update(ctx context.Context, id string, patch models.CandyMachinePatch) (*models.CandyMachine, error)
}

type deploymentService struct {
	candyMachines CandyMachineService
	hooks         HookService
	logger        *zap.Logger
}

// NewDeploymentService creates a new DeploymentService
func NewDeploymentService(candyMachines CandyMachineService, hooks HookService, logger *zap.Logger) DeploymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &deploymentService{candyMachines: candyMachines, hooks: hooks, logger: logger.Named("deployments")}
}

func (s *deploymentService) Save(ctx context.Context, candyMachine models.CandyMachine) (*models.CandyMachine, error) {
	record := candyMachine.Clone()
	chain := record.Blockchain
	if chain == "" {
		chain = models.DefaultChain
	}

	for _, field := range []struct {
		name string
		ptr  **string
	}{
		{"payerAddress", &record.PayerAddress},
		{"candyMachineAddress", &record.CandyMachineAddress},
		{"collectionMintAddress", &record.CollectionMintAddress},
	} {
		if *field.ptr == nil {
			continue
		}
		normalized, err := utils.NormalizeAddress(chain, **field.ptr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, field.name, err)
		}
		*field.ptr = &normalized
	}
	for _, field := range []struct {
		name string
		ref  *string
	}{
		{"deploymentTx", record.DeploymentTx},
		{"itemsInsertTx", record.ItemsInsertTx},
	} {
		if field.ref == nil {
			continue
		}
		if err := utils.ValidateTxRef(chain, *field.ref); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, field.name, err)
		}
	}
	if record.ItemsInserted && record.DeploymentStatus != models.DeploymentStatusDeployed {
		return nil, fmt.Errorf("%w: items can only be inserted into a deployed candy machine", ErrInvalidTransition)
	}

	return s.candyMachines.Save(ctx, record)
}

// Update applies patch after checking the status transition against the
// stored record. The check and the write are not atomic; a concurrent
// writer can still win.
func (s *deploymentService) Update(ctx context.Context, id string, patch models.CandyMachinePatch) (*models.CandyMachine, error) {
	current, err := s.candyMachines.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("failed to update candy machine %s: %w", id, ErrNotFound)
	}

	next := current.DeploymentStatus
	if patch.DeploymentStatus.Set && patch.DeploymentStatus.Valid {
		next = patch.DeploymentStatus.Value
		if !current.DeploymentStatus.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.DeploymentStatus, next)
		}
	}

	chain := current.Blockchain
	if patch.Blockchain.Set && patch.Blockchain.Valid {
		chain = patch.Blockchain.Value
	}
	for _, field := range []struct {
		name string
		opt  *models.Optional[string]
	}{
		{"payerAddress", &patch.PayerAddress},
		{"candyMachineAddress", &patch.CandyMachineAddress},
		{"collectionMintAddress", &patch.CollectionMintAddress},
	} {
		if !field.opt.Set || !field.opt.Valid {
			continue
		}
		normalized, err := utils.NormalizeAddress(chain, field.opt.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, field.name, err)
		}
		field.opt.Value = normalized
	}
	for _, field := range []struct {
		name string
		opt  models.Optional[string]
	}{
		{"deploymentTx", patch.DeploymentTx},
		{"itemsInsertTx", patch.ItemsInsertTx},
	} {
		if !field.opt.Set || !field.opt.Valid {
			continue
		}
		if err := utils.ValidateTxRef(chain, field.opt.Value); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, field.name, err)
		}
	}
	if patch.ItemsInserted.Set && patch.ItemsInserted.Value && next != models.DeploymentStatusDeployed {
		return nil, fmt.Errorf("%w: items can only be inserted into a deployed candy machine", ErrInvalidTransition)
	}

	updated, err := s.candyMachines.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if updated.DeploymentStatus != current.DeploymentStatus && s.hooks != nil {
		if err := s.hooks.OnStatusChanged(ctx, current.DeploymentStatus, *updated); err != nil {
			// The record is already committed; report and move on.
			s.logger.Warn("deployment hook failed",
				zap.String("id", id),
				zap.String("status", string(updated.DeploymentStatus)),
				zap.Error(err))
		}
	}

	s.logger.Info("candy machine updated",
		zap.String("id", id),
		zap.String("previous_status", string(current.DeploymentStatus)),
		zap.String("status", string(updated.DeploymentStatus)))
	return updated, nil
}
