package test

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/evm-wallet/internal/wallet/provider"
)

var ErrStubNotConfigured = errors.New("stub provider: call not configured")

// StubProvider is an in-memory provider.Provider. Unset function fields
// return ErrStubNotConfigured; ChainID defaults to 1337 and nonces to 0.
type StubProvider struct {
	mu   sync.Mutex
	sent []*types.Transaction

	ChainIDValue *big.Int

	BlockNumberFn          func(ctx context.Context) (uint64, error)
	BalanceAtFn            func(ctx context.Context, account common.Address) (*big.Int, error)
	PendingNonceAtFn       func(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPriceFn      func(ctx context.Context) (*big.Int, error)
	MaxPriorityFeePerGasFn func(ctx context.Context) (*big.Int, error)
	EstimateGasFn          func(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContractFn         func(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	SendTransactionFn      func(ctx context.Context, tx *types.Transaction) error
	BlockByNumberFn        func(ctx context.Context, number *big.Int) (*types.Block, error)
	HeaderByNumberFn       func(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionByHashFn    func(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceiptFn   func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	FilterLogsFn           func(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)
}

var _ provider.Provider = (*StubProvider)(nil)

// Dialer returns a dialer handing out p for every URL.
func (p *StubProvider) Dialer() provider.Dialer {
	return provider.DialerFunc(func(_ context.Context, _ string) (provider.Provider, error) {
		return p, nil
	})
}

// Sent returns the transactions passed to SendTransaction so far.
func (p *StubProvider) Sent() []*types.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*types.Transaction(nil), p.sent...)
}

func (p *StubProvider) ChainID(_ context.Context) (*big.Int, error) {
	if p.ChainIDValue != nil {
		return p.ChainIDValue, nil
	}

	return big.NewInt(1337), nil
}

func (p *StubProvider) BlockNumber(ctx context.Context) (uint64, error) {
	if p.BlockNumberFn == nil {
		return 0, ErrStubNotConfigured
	}

	return p.BlockNumberFn(ctx)
}

func (p *StubProvider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	if p.BalanceAtFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.BalanceAtFn(ctx, account)
}

func (p *StubProvider) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	if p.PendingNonceAtFn == nil {
		return 0, nil
	}

	return p.PendingNonceAtFn(ctx, account)
}

func (p *StubProvider) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if p.SuggestGasPriceFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.SuggestGasPriceFn(ctx)
}

func (p *StubProvider) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	if p.MaxPriorityFeePerGasFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.MaxPriorityFeePerGasFn(ctx)
}

func (p *StubProvider) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	if p.EstimateGasFn == nil {
		return 0, ErrStubNotConfigured
	}

	return p.EstimateGasFn(ctx, msg)
}

func (p *StubProvider) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if p.CallContractFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.CallContractFn(ctx, msg)
}

func (p *StubProvider) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if p.SendTransactionFn != nil {
		if err := p.SendTransactionFn(ctx, tx); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, tx)

	return nil
}

func (p *StubProvider) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	if p.BlockByNumberFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.BlockByNumberFn(ctx, number)
}

func (p *StubProvider) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if p.HeaderByNumberFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.HeaderByNumberFn(ctx, number)
}

func (p *StubProvider) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	if p.TransactionByHashFn == nil {
		return nil, false, ErrStubNotConfigured
	}

	return p.TransactionByHashFn(ctx, hash)
}

func (p *StubProvider) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if p.TransactionReceiptFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.TransactionReceiptFn(ctx, hash)
}

func (p *StubProvider) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	if p.FilterLogsFn == nil {
		return nil, ErrStubNotConfigured
	}

	return p.FilterLogsFn(ctx, query)
}

func (p *StubProvider) Close() {}

// NoSleep is a fee.SleepFunc that returns immediately.
func NoSleep(_ context.Context, _ time.Duration) error {
	return nil
}
