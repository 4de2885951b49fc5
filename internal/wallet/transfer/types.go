package transfer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/signer"
)

// Service estimates, signs and submits native and ERC20 transfers.
type Service interface {
	SendNative(ctx context.Context, key signer.Key, req Request, endpoint network.Endpoint) (*Result, error)
	SendToken(ctx context.Context, key signer.Key, req Request, endpoint network.Endpoint) (*Result, error)
	EstimateNativeTransferCost(ctx context.Context, from common.Address, req Request, endpoint network.Endpoint) (*Estimate, error)
	EstimateTokenTransferCost(ctx context.Context, from common.Address, req Request, endpoint network.Endpoint) (*Estimate, error)
}

// Request describes a transfer. Amount is in the asset's smallest unit;
// Token is required for token transfers and ignored otherwise.
type Request struct {
	To     common.Address
	Amount *big.Int
	Token  *common.Address
}

// Estimate is the pre-flight cost of a transfer. GasPrice is the
// conservative per-gas price used (the quote's max fee).
type Estimate struct {
	GasLimit    uint64
	GasPrice    *big.Int
	TotalFee    *big.Int
	Value       *big.Int
	TotalNeeded *big.Int
	Balance     *big.Int
	Quote       fee.Quote
}

type Result struct {
	TxHash   common.Hash
	From     common.Address
	To       common.Address
	Nonce    uint64
	ChainID  *big.Int
	Estimate *Estimate
}

// Observer is told about every submission attempt.
type Observer interface {
	ObserveTransfer(asset string, outcome string)
}
