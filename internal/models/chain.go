package models

type ChainType string

const (
	ChainTypeEthereum ChainType = "ethereum"
	ChainTypeSolana   ChainType = "solana"
)

func (c ChainType) IsValid() bool {
	switch c {
	case ChainTypeEthereum, ChainTypeSolana:
		return true
	}
	return false
}

// DefaultChain is assumed for candy machine records saved without one.
const DefaultChain = ChainTypeSolana

// SupportedChains lists every chain a record may name, in display order.
var SupportedChains = []ChainType{ChainTypeEthereum, ChainTypeSolana}

// AddressFormat describes the address and transaction references accepted for c.
func (c ChainType) AddressFormat() (address, tx string) {
	switch c {
	case ChainTypeEthereum:
		return "0x-prefixed 20-byte hex, stored with EIP-55 checksum", "0x-prefixed 32-byte hex hash"
	case ChainTypeSolana:
		return "base58 32-byte public key", "base58 64-byte signature"
	}
	return "", ""
}
