package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

const (
	solanaPublicKeyLength = 32
	solanaSignatureLength = 64
)

// NormalizeAddress validates an account address for the chain and returns
// its canonical form (EIP-55 checksum on ethereum, unchanged base58 on solana).
func NormalizeAddress(chain models.ChainType, address string) (string, error) {
	switch chain {
	case models.ChainTypeEthereum:
		if !common.IsHexAddress(address) {
			return "", fmt.Errorf("invalid ethereum address: %s", address)
		}
		return common.HexToAddress(address).Hex(), nil
	case models.ChainTypeSolana:
		decoded, err := base58.Decode(address)
		if err != nil {
			return "", fmt.Errorf("invalid solana address %s: %w", address, err)
		}
		if len(decoded) != solanaPublicKeyLength {
			return "", fmt.Errorf("invalid solana address %s: expected %d bytes, got %d", address, solanaPublicKeyLength, len(decoded))
		}
		return address, nil
	default:
		return "", fmt.Errorf("unsupported chain type: %s", chain)
	}
}

// ValidateTxRef checks that ref looks like a transaction reference on the
// chain: a 32-byte hex hash on ethereum, a 64-byte base58 signature on solana.
func ValidateTxRef(chain models.ChainType, ref string) error {
	switch chain {
	case models.ChainTypeEthereum:
		b, err := hexutil.Decode(ref)
		if err != nil {
			return fmt.Errorf("invalid ethereum transaction hash %s: %w", ref, err)
		}
		if len(b) != common.HashLength {
			return fmt.Errorf("invalid ethereum transaction hash %s: expected %d bytes, got %d", ref, common.HashLength, len(b))
		}
		return nil
	case models.ChainTypeSolana:
		b, err := base58.Decode(ref)
		if err != nil {
			return fmt.Errorf("invalid solana transaction signature %s: %w", ref, err)
		}
		if len(b) != solanaSignatureLength {
			return fmt.Errorf("invalid solana transaction signature %s: expected %d bytes, got %d", ref, solanaSignatureLength, len(b))
		}
		return nil
	default:
		return fmt.Errorf("unsupported chain type: %s", chain)
	}
}
