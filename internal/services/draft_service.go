package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveDraftRequest is a complete draft to upsert. An empty ID mints a new one.
type SaveDraftRequest struct {
	ID              string
	Blockchain      string `validate:"draftchain"`
	FormData        models.FormData
	CollectionImage models.File
	NFTAssets       []models.File
}

// DraftUpdate lists the draft fields an update may change.
// None on CollectionImage or NFTAssets removes those assets.
type DraftUpdate struct {
	Blockchain      models.Optional[string]
	FormData        models.Optional[models.FormData]
	CollectionImage models.Optional[models.File]
	NFTAssets       models.Optional[[]models.File]
}

// DraftService persists creation-form drafts together with their files.
type DraftService interface {
	Save(ctx context.Context, req SaveDraftRequest) (*models.Draft, error)
	// Load returns nil, nil when no draft has the id.
	Load(ctx context.Context, id string) (*models.Draft, error)
	Update(ctx context.Context, id string, update DraftUpdate) (*models.Draft, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	// ListAll and ListByBlockchain return the most recently updated first.
	ListAll(ctx context.Context) ([]models.Draft, error)
	ListByBlockchain(ctx context.Context, blockchain string) ([]models.Draft, error)
	// ListSummaries lists drafts for blockchain (every chain when empty)
	// without reading asset bytes.
	ListSummaries(ctx context.Context, blockchain string) ([]models.DraftSummary, error)
}

type draftService struct {
	db     DBService
	logger *zap.Logger
	now    func() time.Time
}

// NewDraftService creates a new DraftService
func NewDraftService(db DBService, logger *zap.Logger) DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &draftService{db: db, logger: logger.Named("drafts"), now: time.Now}
}

// Save reads every file, then replaces the draft row and all of its asset
// rows in one transaction.
func (s *draftService) Save(ctx context.Context, req SaveDraftRequest) (*models.Draft, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := req.FormData.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	formData, err := req.FormData.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: form data: %w", ErrInvalidRecord, err)
	}

	var assets []models.DraftAsset
	if req.CollectionImage != nil {
		image, err := encodeFile(ctx, s.logger, models.AssetRoleCollectionImage, 0, req.CollectionImage)
		if err != nil {
			return nil, err
		}
		assets = append(assets, image)
	}
	nfts, err := encodeFiles(ctx, s.logger, models.AssetRoleNFT, req.NFTAssets)
	if err != nil {
		return nil, err
	}
	assets = append(assets, nfts...)

	id := req.ID
	if id == "" {
		id = models.NewDraftID(req.Blockchain)
	}

	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open draft store", err)
	}

	draft := models.Draft{
		ID:          id,
		Blockchain:  req.Blockchain,
		FormData:    formData,
		LastUpdated: s.now().UnixMilli(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&draft).Error; err != nil {
			return err
		}
		return replaceAssets(tx, id, nil, assets)
	})
	if err != nil {
		return nil, classifyError("save draft", err)
	}

	s.logger.Debug("draft saved", zap.String("id", id), zap.Int("assets", len(assets)))
	draft.Assets = assets
	s.hydrate(&draft)
	return &draft, nil
}

func (s *draftService) Load(ctx context.Context, id string) (*models.Draft, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open draft store", err)
	}

	var draft models.Draft
	err = db.Preload("Assets", orderAssets).First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError("load draft", err)
	}

	s.hydrate(&draft)
	return &draft, nil
}

// Update merges the set fields over the stored draft. Files are read before
// the transaction starts.
func (s *draftService) Update(ctx context.Context, id string, update DraftUpdate) (*models.Draft, error) {
	if update.Blockchain.Set {
		if !update.Blockchain.Valid {
			return nil, fmt.Errorf("%w: blockchain cannot be cleared", ErrInvalidRecord)
		}
		if !models.IsValidDraftBlockchain(update.Blockchain.Value) {
			return nil, fmt.Errorf("%w: invalid blockchain %q", ErrInvalidRecord, update.Blockchain.Value)
		}
	}
	var formData models.FormData
	if update.FormData.Set && update.FormData.Valid {
		if err := update.FormData.Value.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		normalized, err := update.FormData.Value.Normalize()
		if err != nil {
			return nil, fmt.Errorf("%w: form data: %w", ErrInvalidRecord, err)
		}
		formData = normalized
	}

	var image []models.DraftAsset
	if update.CollectionImage.Set && update.CollectionImage.Valid && update.CollectionImage.Value != nil {
		encoded, err := encodeFile(ctx, s.logger, models.AssetRoleCollectionImage, 0, update.CollectionImage.Value)
		if err != nil {
			return nil, err
		}
		image = []models.DraftAsset{encoded}
	}
	var nfts []models.DraftAsset
	if update.NFTAssets.Set && update.NFTAssets.Valid {
		encoded, err := encodeFiles(ctx, s.logger, models.AssetRoleNFT, update.NFTAssets.Value)
		if err != nil {
			return nil, err
		}
		nfts = encoded
	}

	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open draft store", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Draft
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if update.Blockchain.Set {
			existing.Blockchain = update.Blockchain.Value
		}
		if update.FormData.Set {
			existing.FormData = formData
		}
		existing.LastUpdated = s.now().UnixMilli()

		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return err
		}
		if update.CollectionImage.Set {
			if err := replaceAssets(tx, id, []models.AssetRole{models.AssetRoleCollectionImage}, image); err != nil {
				return err
			}
		}
		if update.NFTAssets.Set {
			if err := replaceAssets(tx, id, []models.AssetRole{models.AssetRoleNFT}, nfts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classifyError("update draft", err)
	}

	draft, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		// Deleted by someone else between the commit and the read.
		return nil, fmt.Errorf("failed to update draft: %w", ErrNotFound)
	}
	return draft, nil
}

func (s *draftService) Delete(ctx context.Context, id string) error {
	db, err := s.db.Open(ctx)
	if err != nil {
		return classifyError("open draft store", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", id).Delete(&models.DraftAsset{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Draft{}).Error
	})
	if err != nil {
		return classifyError("delete draft", err)
	}
	return nil
}

func (s *draftService) ListAll(ctx context.Context) ([]models.Draft, error) {
	return s.list(ctx, nil)
}

func (s *draftService) ListByBlockchain(ctx context.Context, blockchain string) ([]models.Draft, error) {
	return s.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("blockchain = ?", blockchain)
	})
}

func (s *draftService) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Draft, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open draft store", err)
	}

	query := db.Preload("Assets", orderAssets).Order("last_updated DESC")
	if scope != nil {
		query = query.Scopes(scope)
	}

	var drafts []models.Draft
	if err := query.Find(&drafts).Error; err != nil {
		return nil, classifyError("list drafts", err)
	}
	for i := range drafts {
		s.hydrate(&drafts[i])
	}
	return drafts, nil
}

func (s *draftService) ListSummaries(ctx context.Context, blockchain string) ([]models.DraftSummary, error) {
	db, err := s.db.Open(ctx)
	if err != nil {
		return nil, classifyError("open draft store", err)
	}

	query := db.Order("last_updated DESC")
	if blockchain != "" {
		query = query.Where("blockchain = ?", blockchain)
	}
	var drafts []models.Draft
	if err := query.Find(&drafts).Error; err != nil {
		return nil, classifyError("list drafts", err)
	}
	if len(drafts) == 0 {
		return []models.DraftSummary{}, nil
	}

	ids := make([]string, len(drafts))
	for i, d := range drafts {
		ids[i] = d.ID
	}
	var counts []struct {
		DraftID string
		Role    models.AssetRole
		Count   int
	}
	err = db.Model(&models.DraftAsset{}).
		Select("draft_id, role, COUNT(*) AS count").
		Where("draft_id IN ?", ids).
		Group("draft_id, role").
		Scan(&counts).Error
	if err != nil {
		return nil, classifyError("count draft assets", err)
	}

	summaries := make([]models.DraftSummary, len(drafts))
	index := make(map[string]int, len(drafts))
	for i, d := range drafts {
		index[d.ID] = i
		summaries[i] = models.DraftSummary{
			ID:          d.ID,
			Blockchain:  d.Blockchain,
			Name:        d.FormData["name"],
			LastUpdated: d.LastUpdated,
		}
	}
	for _, c := range counts {
		summary := &summaries[index[c.DraftID]]
		switch c.Role {
		case models.AssetRoleCollectionImage:
			summary.HasCollectionImage = c.Count > 0
		case models.AssetRoleNFT:
			summary.NFTAssetCount = c.Count
		}
	}
	return summaries, nil
}

// hydrate moves stored asset rows into the draft's file fields.
func (s *draftService) hydrate(draft *models.Draft) {
	draft.CollectionImage = nil
	draft.NFTAssets = nil
	for _, row := range draft.Assets {
		asset := decodeAsset(s.logger, row)
		switch row.Role {
		case models.AssetRoleCollectionImage:
			draft.CollectionImage = &asset
		case models.AssetRoleNFT:
			draft.NFTAssets = append(draft.NFTAssets, asset)
		}
	}
	draft.Assets = nil
}

// replaceAssets deletes the draft's asset rows for roles (all roles when
// empty) and inserts assets in their place.
func replaceAssets(tx *gorm.DB, draftID string, roles []models.AssetRole, assets []models.DraftAsset) error {
	del := tx.Where("draft_id = ?", draftID)
	if len(roles) > 0 {
		del = del.Where("role IN ?", roles)
	}
	if err := del.Delete(&models.DraftAsset{}).Error; err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}
	for i := range assets {
		assets[i].ID = 0
		assets[i].DraftID = draftID
	}
	return tx.Create(&assets).Error
}

func orderAssets(db *gorm.DB) *gorm.DB {
	return db.Order("role ASC").Order("position ASC")
}
