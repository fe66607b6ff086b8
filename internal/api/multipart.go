package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

const (
	fieldID                   = "id"
	fieldBlockchain           = "blockchain"
	fieldFormData             = "formData"
	fieldCollectionImage      = "collectionImage"
	fieldNFTAssets            = "nftAssets"
	fieldClearCollectionImage = "clearCollectionImage"
	fieldClearNFTAssets       = "clearNftAssets"
)

// uploadedFile adapts a multipart file header to models.File.
type uploadedFile struct {
	header *multipart.FileHeader
}

func (f uploadedFile) Name() string { return f.header.Filename }

func (f uploadedFile) Type() string { return f.header.Header.Get(fiber.HeaderContentType) }

func (f uploadedFile) Size() int64 { return f.header.Size }

func (f uploadedFile) Open() (io.ReadCloser, error) { return f.header.Open() }

// draftForm is the parsed multipart body of a draft save or update.
type draftForm struct {
	form *multipart.Form
}

func parseDraftForm(c *fiber.Ctx) (*draftForm, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid multipart body: %v", err))
	}
	return &draftForm{form: form}, nil
}

func (d *draftForm) value(key string) (string, bool) {
	values, ok := d.form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (d *draftForm) flag(key string) (bool, error) {
	v, ok := d.value(key)
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s: %v", key, err))
	}
	return b, nil
}

func (d *draftForm) formData() (models.FormData, bool, error) {
	raw, ok := d.value(fieldFormData)
	if !ok {
		return nil, false, nil
	}
	if raw == "" || raw == "null" {
		return nil, true, nil
	}
	var data models.FormData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid formData: %v", err))
	}
	return data, true, nil
}

func (d *draftForm) files(key string) []models.File {
	headers := d.form.File[key]
	if len(headers) == 0 {
		return nil
	}
	files := make([]models.File, 0, len(headers))
	for _, h := range headers {
		files = append(files, uploadedFile{header: h})
	}
	return files
}
