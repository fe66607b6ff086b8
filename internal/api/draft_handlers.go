package api

import (
	"fmt"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"github.com/rxtech-lab/launchpad-drafts/internal/services"
)

// handleSaveDraft upserts a full draft from a multipart body
func (s *APIServer) handleSaveDraft(c *fiber.Ctx) error {
	form, err := parseDraftForm(c)
	if err != nil {
		return err
	}

	blockchain, _ := form.value(fieldBlockchain)
	id, _ := form.value(fieldID)
	formData, _, err := form.formData()
	if err != nil {
		return err
	}

	req := services.SaveDraftRequest{
		ID:         id,
		Blockchain: blockchain,
		FormData:   formData,
		NFTAssets:  form.files(fieldNFTAssets),
	}
	if images := form.files(fieldCollectionImage); len(images) > 0 {
		if len(images) > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "only one collectionImage may be uploaded")
		}
		req.CollectionImage = images[0]
	}

	draft, err := s.draftService.Save(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// handleListDrafts lists drafts, optionally filtered by blockchain
func (s *APIServer) handleListDrafts(c *fiber.Ctx) error {
	var (
		drafts []models.Draft
		err    error
	)
	if blockchain := c.Query("blockchain"); blockchain != "" {
		drafts, err = s.draftService.ListByBlockchain(c.UserContext(), blockchain)
	} else {
		drafts, err = s.draftService.ListAll(c.UserContext())
	}
	if err != nil {
		return err
	}
	if drafts == nil {
		drafts = []models.Draft{}
	}
	return c.JSON(fiber.Map{"drafts": drafts, "count": len(drafts)})
}

func (s *APIServer) handleGetDraft(c *fiber.Ctx) error {
	draft, err := s.loadDraft(c)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

// handleUpdateDraft changes only the parts present in the multipart body
func (s *APIServer) handleUpdateDraft(c *fiber.Ctx) error {
	form, err := parseDraftForm(c)
	if err != nil {
		return err
	}

	var update services.DraftUpdate
	if blockchain, ok := form.value(fieldBlockchain); ok {
		update.Blockchain = models.Some(blockchain)
	}

	formData, present, err := form.formData()
	if err != nil {
		return err
	}
	if present {
		if formData == nil {
			update.FormData = models.None[models.FormData]()
		} else {
			update.FormData = models.Some(formData)
		}
	}

	clearImage, err := form.flag(fieldClearCollectionImage)
	if err != nil {
		return err
	}
	images := form.files(fieldCollectionImage)
	switch {
	case len(images) > 1:
		return fiber.NewError(fiber.StatusBadRequest, "only one collectionImage may be uploaded")
	case len(images) == 1:
		update.CollectionImage = models.Some(images[0])
	case clearImage:
		update.CollectionImage = models.None[models.File]()
	}

	clearNFTs, err := form.flag(fieldClearNFTAssets)
	if err != nil {
		return err
	}
	if nfts := form.files(fieldNFTAssets); len(nfts) > 0 {
		update.NFTAssets = models.Some(nfts)
	} else if clearNFTs {
		update.NFTAssets = models.None[[]models.File]()
	}

	draft, err := s.draftService.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(draft)
}

func (s *APIServer) handleDeleteDraft(c *fiber.Ctx) error {
	if err := s.draftService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleGetCollectionImage streams the stored collection image bytes
func (s *APIServer) handleGetCollectionImage(c *fiber.Ctx) error {
	draft, err := s.loadDraft(c)
	if err != nil {
		return err
	}
	if draft.CollectionImage == nil {
		return fiber.NewError(fiber.StatusNotFound, "draft has no collection image")
	}
	return sendAsset(c, *draft.CollectionImage)
}

// handleGetNFTAsset streams one NFT asset by its position
func (s *APIServer) handleGetNFTAsset(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "index must be a non-negative integer")
	}

	draft, err := s.loadDraft(c)
	if err != nil {
		return err
	}
	if index >= len(draft.NFTAssets) {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("draft has no nft asset at index %d", index))
	}
	return sendAsset(c, draft.NFTAssets[index])
}

func (s *APIServer) loadDraft(c *fiber.Ctx) (*models.Draft, error) {
	draft, err := s.draftService.Load(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "draft not found")
	}
	return draft, nil
}

// sendAsset serves an asset inline. Assets stored without a content type are
// served with the type sniffed from their bytes.
func sendAsset(c *fiber.Ctx, asset models.Asset) error {
	contentType := asset.Type()
	if contentType == "" {
		contentType = mimetype.Detect(asset.Data).String()
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", asset.Name()))
	return c.Send(asset.Data)
}
