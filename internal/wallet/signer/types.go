package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Service provides transaction signing functionality
type Service interface {
	// SignEVMTransaction signs an EVM transaction (EIP-1559)
	SignEVMTransaction(ctx context.Context, key Key, req *SignEVMRequest) (*SignEVMResponse, error)
}

// Key is a signing capability for one account.
type Key interface {
	CanSign() bool
	Account() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// SignEVMRequest represents a request to sign an EVM transaction
type SignEVMRequest struct {
	ChainID              *big.Int       // Chain ID (1 for Ethereum mainnet, 137 for Polygon, etc.)
	From                 common.Address // Address expected to sign
	To                   common.Address // Recipient address or token contract
	Value                *big.Int       // Amount in wei
	GasLimit             uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Nonce                uint64
	Data                 []byte // Call data (for contract calls)
}

// SignEVMResponse represents a signed EVM transaction
type SignEVMResponse struct {
	Transaction    *types.Transaction
	RawTransaction []byte      // Binary encoded signed transaction
	TxHash         common.Hash // Transaction hash
}
