package models

import (
	"bytes"
	"encoding/json"
	"io"
)

// File is a named, typed byte source. Uploaded files are read through it on
// save, and loaded assets are handed back through it.
type File interface {
	Name() string
	Type() string
	// Size is the length the source reports, or -1 when unknown.
	Size() int64
	Open() (io.ReadCloser, error)
}

type AssetRole string

const (
	AssetRoleCollectionImage AssetRole = "collection_image"
	AssetRoleNFT             AssetRole = "nft_asset"
)

// DraftAsset is the stored form of a binary file attached to a draft.
type DraftAsset struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	DraftID  string    `gorm:"index;not null;type:varchar(255)" json:"-"`
	Role     AssetRole `gorm:"not null;type:varchar(32)" json:"role"`
	Position int       `gorm:"not null" json:"position"`
	Name     string    `gorm:"not null" json:"name"`
	Type     string    `json:"type"`
	Size     int64     `gorm:"not null" json:"size"` // byte count at save time
	Data     []byte    `gorm:"not null" json:"-"`
}

// Asset is a file reconstituted from storage. It owns its bytes.
type Asset struct {
	Filename    string
	ContentType string
	Data        []byte
}

var _ File = Asset{}

func (a Asset) Name() string { return a.Filename }

func (a Asset) Type() string { return a.ContentType }

func (a Asset) Size() int64 { return int64(len(a.Data)) }

func (a Asset) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(a.Data)), nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	}{a.Filename, a.ContentType, a.Size()})
}
