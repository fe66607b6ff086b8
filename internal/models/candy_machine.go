package models

import "fmt"

type DeploymentStatus string

const (
	DeploymentStatusPending   DeploymentStatus = "pending"
	DeploymentStatusDeploying DeploymentStatus = "deploying"
	DeploymentStatusDeployed  DeploymentStatus = "deployed"
	DeploymentStatusFailed    DeploymentStatus = "failed"
)

func (s DeploymentStatus) IsValid() bool {
	switch s {
	case DeploymentStatusPending, DeploymentStatusDeploying, DeploymentStatusDeployed, DeploymentStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends a deployment attempt.
func (s DeploymentStatus) IsTerminal() bool {
	return s == DeploymentStatusDeployed || s == DeploymentStatusFailed
}

// CanTransitionTo reports whether a deployment may move from s to next.
// Deployed is final. Failed ends the attempt, but a new attempt may start
// from pending or deploying.
func (s DeploymentStatus) CanTransitionTo(next DeploymentStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case DeploymentStatusPending:
		return true
	case DeploymentStatusDeploying:
		return next.IsTerminal()
	case DeploymentStatusFailed:
		return next == DeploymentStatusPending || next == DeploymentStatusDeploying
	}
	return false
}

// CandyMachine tracks a collection from creation through on-chain deployment
// and item insertion.
type CandyMachine struct {
	ID         string    `gorm:"primaryKey;type:varchar(255)" json:"id" validate:"required"`
	DraftID    *string   `gorm:"index;type:varchar(255)" json:"draftId,omitempty"`
	Blockchain ChainType `gorm:"not null;type:varchar(32)" json:"blockchain" validate:"required,oneof=ethereum solana"`

	Name        string  `gorm:"not null" json:"name" validate:"required"`
	Symbol      string  `gorm:"not null" json:"symbol" validate:"required"`
	Supply      int     `gorm:"not null" json:"supply" validate:"gt=0"`
	MintPrice   float64 `gorm:"not null" json:"mintPrice" validate:"gte=0"`
	ManifestURL string  `gorm:"not null" json:"manifestUrl" validate:"required,url"`

	PayerAddress          *string `json:"payerAddress,omitempty"`
	CandyMachineAddress   *string `json:"candyMachineAddress,omitempty"`
	CollectionMintAddress *string `json:"collectionMintAddress,omitempty"`

	DeploymentStatus DeploymentStatus `gorm:"index;not null;type:varchar(32)" json:"deploymentStatus" validate:"required,oneof=pending deploying deployed failed"`
	DeploymentTx     *string          `json:"deploymentTx,omitempty"`
	DeploymentError  *string          `json:"deploymentError,omitempty"`

	ItemsInserted    bool    `gorm:"not null" json:"itemsInserted"`
	ItemsInsertTx    *string `json:"itemsInsertTx,omitempty"`
	ItemsInsertError *string `json:"itemsInsertError,omitempty"`
	TotalItems       *int    `json:"totalItems,omitempty" validate:"omitempty,gte=0"`

	// Unix milliseconds, stamped by the store.
	CreatedAt int64 `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
}

// Clone returns a deep copy so pointer fields are never shared.
func (c CandyMachine) Clone() CandyMachine {
	out := c
	out.DraftID = clonePtr(c.DraftID)
	out.PayerAddress = clonePtr(c.PayerAddress)
	out.CandyMachineAddress = clonePtr(c.CandyMachineAddress)
	out.CollectionMintAddress = clonePtr(c.CollectionMintAddress)
	out.DeploymentTx = clonePtr(c.DeploymentTx)
	out.DeploymentError = clonePtr(c.DeploymentError)
	out.ItemsInsertTx = clonePtr(c.ItemsInsertTx)
	out.ItemsInsertError = clonePtr(c.ItemsInsertError)
	out.TotalItems = clonePtr(c.TotalItems)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CandyMachinePatch lists the fields an update may change. Unset fields are
// left as they are; None clears an optional field.
type CandyMachinePatch struct {
	DraftID     Optional[string]    `json:"draftId"`
	Blockchain  Optional[ChainType] `json:"blockchain"`
	Name        Optional[string]    `json:"name"`
	Symbol      Optional[string]    `json:"symbol"`
	Supply      Optional[int]       `json:"supply"`
	MintPrice   Optional[float64]   `json:"mintPrice"`
	ManifestURL Optional[string]    `json:"manifestUrl"`

	PayerAddress          Optional[string] `json:"payerAddress"`
	CandyMachineAddress   Optional[string] `json:"candyMachineAddress"`
	CollectionMintAddress Optional[string] `json:"collectionMintAddress"`

	DeploymentStatus Optional[DeploymentStatus] `json:"deploymentStatus"`
	DeploymentTx     Optional[string]           `json:"deploymentTx"`
	DeploymentError  Optional[string]           `json:"deploymentError"`

	ItemsInserted    Optional[bool]   `json:"itemsInserted"`
	ItemsInsertTx    Optional[string] `json:"itemsInsertTx"`
	ItemsInsertError Optional[string] `json:"itemsInsertError"`
	TotalItems       Optional[int]    `json:"totalItems"`
}

// Apply merges the set fields of p over c.
func (p CandyMachinePatch) Apply(c *CandyMachine) error {
	required := []error{
		applyRequired(&c.Blockchain, p.Blockchain, "blockchain"),
		applyRequired(&c.Name, p.Name, "name"),
		applyRequired(&c.Symbol, p.Symbol, "symbol"),
		applyRequired(&c.Supply, p.Supply, "supply"),
		applyRequired(&c.MintPrice, p.MintPrice, "mintPrice"),
		applyRequired(&c.ManifestURL, p.ManifestURL, "manifestUrl"),
		applyRequired(&c.DeploymentStatus, p.DeploymentStatus, "deploymentStatus"),
		applyRequired(&c.ItemsInserted, p.ItemsInserted, "itemsInserted"),
	}
	for _, err := range required {
		if err != nil {
			return fmt.Errorf("invalid patch: %w", err)
		}
	}

	applyNullable(&c.DraftID, p.DraftID)
	applyNullable(&c.PayerAddress, p.PayerAddress)
	applyNullable(&c.CandyMachineAddress, p.CandyMachineAddress)
	applyNullable(&c.CollectionMintAddress, p.CollectionMintAddress)
	applyNullable(&c.DeploymentTx, p.DeploymentTx)
	applyNullable(&c.DeploymentError, p.DeploymentError)
	applyNullable(&c.ItemsInsertTx, p.ItemsInsertTx)
	applyNullable(&c.ItemsInsertError, p.ItemsInsertError)
	applyNullable(&c.TotalItems, p.TotalItems)
	return nil
}

// IsEmpty reports whether the patch sets nothing.
func (p CandyMachinePatch) IsEmpty() bool {
	return !(p.DraftID.Set || p.Blockchain.Set || p.Name.Set || p.Symbol.Set || p.Supply.Set ||
		p.MintPrice.Set || p.ManifestURL.Set || p.PayerAddress.Set || p.CandyMachineAddress.Set ||
		p.CollectionMintAddress.Set || p.DeploymentStatus.Set || p.DeploymentTx.Set ||
		p.DeploymentError.Set || p.ItemsInserted.Set || p.ItemsInsertTx.Set ||
		p.ItemsInsertError.Set || p.TotalItems.Set)
}
