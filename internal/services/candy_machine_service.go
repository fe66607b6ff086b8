package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CandyMachineService stores deployment records. It does not judge status
// transitions; callers that care go through DeploymentService.
type CandyMachineService interface {
	// Save upserts the full record. CreatedAt of an existing record is kept.
	Save(ctx context.Context, candyMachine models.CandyMachine) (*models.CandyMachine, error)
	// Load returns nil, nil when no record has the id.
	Load(ctx context.Context, id string) (*models.CandyMachine, error)
	Update(ctx context.Context, id string, patch models.CandyMachinePatch) (*models.CandyMachine, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.CandyMachine, error)
	ListByStatus(ctx context.Context, status models.DeploymentStatus) ([]models.CandyMachine, error)
}

type candyMachineService struct {
	db     DBService
	logger *zap.Logger
	now    func() time.Time
}

// NewCandyMachineService creates a new CandyMachineService
func NewCandyMachineService(db DBService, logger *zap.Logger) CandyMachineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &candyMachineService{db: db, logger: logger.Named("candy_machines"), now: time.Now}
}

func (s *candyMachineService) Save(ctx context.Context, candyMachine models.CandyMachine) (*models.CandyMachine, error) {
	record := candyMachine.Clone()
	if record.Blockchain == "" {
		record.Blockchain = models.DefaultChain
	}
	if record.DeploymentStatus == "" {
		record.DeploymentStatus = models.DeploymentStatusPending
	}
	if err := validate.Struct(record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open candy machine store", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		now := s.now().UnixMilli()

		var existing models.CandyMachine
		err := tx.Select("id", "created_at").First(&existing, "id = ?", record.ID).Error
		switch {
		case err == nil:
			record.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			record.CreatedAt = now
		default:
			return err
		}
		record.UpdatedAt = now

		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, classifyError("save candy machine", err)
	}

	s.logger.Debug("candy machine saved",
		zap.String("id", record.ID),
		zap.String("status", string(record.DeploymentStatus)))
	out := record.Clone()
	return &out, nil
}

func (s *candyMachineService) Load(ctx context.Context, id string) (*models.CandyMachine, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open candy machine store", err)
	}

	var record models.CandyMachine
	err = db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError("load candy machine", err)
	}
	return &record, nil
}

// Update reads the record, merges the patch over it and writes it back in
// one transaction.
func (s *candyMachineService) Update(ctx context.Context, id string, patch models.CandyMachinePatch) (*models.CandyMachine, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open candy machine store", err)
	}

	var record models.CandyMachine
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		if err := patch.Apply(&record); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		if err := validate.Struct(record); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		record.UpdatedAt = s.now().UnixMilli()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, classifyError("update candy machine", err)
	}

	out := record.Clone()
	return &out, nil
}

func (s *candyMachineService) Delete(ctx context.Context, id string) error {
	db, err := s.db.Open(ctx)
	if err != nil {
		return classifyError("open candy machine store", err)
	}
	if err := db.Where("id = ?", id).Delete(&models.CandyMachine{}).Error; err != nil {
		return classifyError("delete candy machine", err)
	}
	return nil
}

func (s *candyMachineService) ListAll(ctx context.Context) ([]models.CandyMachine, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open candy machine store", err)
	}
	var records []models.CandyMachine
	if err := db.Order("updated_at DESC").Find(&records).Error; err != nil {
		return nil, classifyError("list candy machines", err)
	}
	return records, nil
}

func (s *candyMachineService) ListByStatus(ctx context.Context, status models.DeploymentStatus) ([]models.CandyMachine, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open candy machine store", err)
	}
	var records []models.CandyMachine
	if err := db.Where("deployment_status = ?", status).Order("updated_at DESC").Find(&records).Error; err != nil {
		return nil, classifyError("list candy machines", err)
	}
	return records, nil
}
