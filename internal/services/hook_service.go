package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

type HookService interface {
	AddHook(hook DeploymentHook) error
	OnStatusChanged(ctx context.Context, previous models.DeploymentStatus, candyMachine models.CandyMachine) error
}

type hookService struct {
	mu    sync.RWMutex
	hooks []DeploymentHook
}

func NewHookService() HookService {
	return &hookService{
		hooks: []DeploymentHook{},
	}
}

func (h *hookService) AddHook(hook DeploymentHook) error {
	if hook == nil {
		return errors.New("hook cannot be nil")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
	return nil
}

// OnStatusChanged runs every matching hook in registration order and stops
// at the first error.
func (h *hookService) OnStatusChanged(ctx context.Context, previous models.DeploymentStatus, candyMachine models.CandyMachine) error {
	h.mu.RLock()
	hooks := append([]DeploymentHook(nil), h.hooks...)
	h.mu.RUnlock()

	for _, hook := range hooks {
		if hook.CanHandle(candyMachine.DeploymentStatus) {
			if err := hook.OnStatusChanged(ctx, previous, candyMachine.Clone()); err != nil {
				return fmt.Errorf("deployment hook failed: %w", err)
			}
		}
	}
	return nil
}
