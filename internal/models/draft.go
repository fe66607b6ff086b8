package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Draft is an in-progress collection creation form persisted before any
// on-chain action happens.
type Draft struct {
	ID          string   `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Blockchain  string   `gorm:"index;not null;type:varchar(64)" json:"blockchain"`
	FormData    FormData `gorm:"type:text" json:"formData"`
	LastUpdated int64    `gorm:"not null" json:"lastUpdated"` // unix milliseconds

	Assets []DraftAsset `gorm:"foreignKey:DraftID;references:ID" json:"-"`

	CollectionImage *Asset  `gorm:"-" json:"collectionImage,omitempty"`
	NFTAssets       []Asset `gorm:"-" json:"nftAssets,omitempty"`
}

// DraftSummary describes a draft without loading its asset bytes.
type DraftSummary struct {
	ID                 string `json:"id"`
	Blockchain         string `json:"blockchain"`
	Name               any    `json:"name"`
	LastUpdated        int64  `json:"lastUpdated"`
	HasCollectionImage bool   `json:"hasCollectionImage"`
	NFTAssetCount      int    `json:"nftAssetCount"`
}

// maxDraftBlockchainLen bounds the blockchain column.
const maxDraftBlockchainLen = 64

// IsValidDraftBlockchain reports whether chain can tag a draft. Any non-empty
// name fits as long as it cannot be confused with the separator of a minted id.
func IsValidDraftBlockchain(chain string) bool {
	return chain != "" && len(chain) <= maxDraftBlockchainLen && !strings.Contains(chain, "-")
}

// NewDraftID mints an id of the form "<chain>-<uuid>".
func NewDraftID(blockchain string) string {
	return fmt.Sprintf("%s-%s", blockchain, uuid.New().String())
}

// ChainFromDraftID returns the prefix before the first "-" of a draft id.
// Stored drafts carry their blockchain explicitly; this is only for
// inspecting ids that came from elsewhere.
func ChainFromDraftID(id string) (string, bool) {
	chain, _, ok := strings.Cut(id, "-")
	if !ok || chain == "" {
		return "", false
	}
	return chain, true
}
