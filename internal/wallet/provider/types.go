// Package provider is the JSON-RPC node access used by the wallet core.
package provider

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Provider is the subset of node RPC the wallet needs. Implementations must
// be safe for concurrent use.
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SuggestGasPrice issues eth_gasPrice.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	// MaxPriorityFeePerGas issues eth_maxPriorityFeePerGas directly.
	MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error)

	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	Close()
}

// Dialer opens a Provider for a (possibly comma separated) RPC URL.
type Dialer interface {
	Dial(ctx context.Context, rpcURL string) (Provider, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, rpcURL string) (Provider, error)

func (f DialerFunc) Dial(ctx context.Context, rpcURL string) (Provider, error) {
	return f(ctx, rpcURL)
}
