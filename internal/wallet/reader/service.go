// Package reader implements read-only queries against an endpoint: balances,
// token metadata, transaction details and best effort range scans.
package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
)

const (
	// DefaultScanDepth is how many blocks below latest a scan starts when no
	// lower bound is given.
	DefaultScanDepth = 100

	abiWordLength       = 32
	decimalsCacheSize   = 1024
	transferTopicsCount = 3
)

var (
	balanceOfMethodID = common.FromHex("70a08231")
	decimalsMethodID  = common.FromHex("313ce567")

	// TransferTopic is keccak256("Transfer(address,address,uint256)").
	TransferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
)

type service struct {
	dialer        provider.Dialer
	decimals      *lru.Cache[string, uint8]
	maxScanBlocks uint64
}

type Option func(s *service)

// WithMaxScanBlocks caps the number of blocks a single scan may cover.
// Zero disables the cap.
func WithMaxScanBlocks(n uint64) Option {
	return func(s *service) {
		s.maxScanBlocks = n
	}
}

// NewService creates a reader Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(dialer provider.Dialer, opts ...Option) (Service, error) {
	cache, err := lru.New[string, uint8](decimalsCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decimals cache")
	}

	s := &service{
		dialer:   dialer,
		decimals: cache,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *service) NativeBalance(ctx context.Context, account common.Address, endpoint network.Endpoint) (*big.Int, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	balance, err := p.BalanceAt(ctx, account)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "get balance", endpoint.URL, err)
	}

	return balance, nil
}

func (s *service) TokenBalance(ctx context.Context, account common.Address, token common.Address, endpoint network.Endpoint) (*big.Int, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	data := make([]byte, 0, len(balanceOfMethodID)+abiWordLength)
	data = append(data, balanceOfMethodID...)
	data = append(data, common.LeftPadBytes(account.Bytes(), abiWordLength)...)

	resp, err := p.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data})
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "call balanceOf", endpoint.URL, err)
	}
	if len(resp) < abiWordLength {
		return nil, errs.WrapEndpoint(errs.KindTransport, "call balanceOf", endpoint.URL,
			errors.Errorf("unexpected response length %d from %s", len(resp), token.Hex()))
	}

	return new(big.Int).SetBytes(resp[:abiWordLength]), nil
}

func (s *service) TokenDecimals(ctx context.Context, token common.Address, endpoint network.Endpoint) (uint8, error) {
	cacheKey := endpoint.URL + "|" + token.Hex()
	if decimals, ok := s.decimals.Get(cacheKey); ok {
		return decimals, nil
	}

	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	resp, err := p.CallContract(ctx, ethereum.CallMsg{To: &token, Data: decimalsMethodID})
	if err != nil {
		return 0, errs.WrapEndpoint(errs.KindTransport, "call decimals", endpoint.URL, err)
	}
	if len(resp) < abiWordLength {
		return 0, errs.WrapEndpoint(errs.KindTransport, "call decimals", endpoint.URL,
			errors.Errorf("unexpected response length %d from %s", len(resp), token.Hex()))
	}

	value := new(big.Int).SetBytes(resp[:abiWordLength])
	if !value.IsUint64() || value.Uint64() > 255 {
		return 0, errs.WrapEndpoint(errs.KindTransport, "call decimals", endpoint.URL,
			errors.Errorf("decimals %s out of range", value))
	}

	decimals := uint8(value.Uint64())
	s.decimals.Add(cacheKey, decimals)

	return decimals, nil
}

func (s *service) CurrentBlock(ctx context.Context, endpoint network.Endpoint) (uint64, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	number, err := p.BlockNumber(ctx)
	if err != nil {
		return 0, errs.WrapEndpoint(errs.KindTransport, "get block number", endpoint.URL, err)
	}

	return number, nil
}

func (s *service) dial(ctx context.Context, endpoint network.Endpoint) (provider.Provider, error) {
	p, err := s.dialer.Dial(ctx, endpoint.URL)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "dial", endpoint.URL, err)
	}

	return p, nil
}

// wrapLookup maps a provider "not found" to KindNotFound.
func wrapLookup(op string, endpoint network.Endpoint, err error) error {
	if errors.Is(err, ethereum.NotFound) {
		return errs.WrapEndpoint(errs.KindNotFound, op, endpoint.URL, err)
	}

	return errs.WrapEndpoint(errs.KindTransport, op, endpoint.URL, err)
}

func senderOf(signer types.Signer, tx *types.Transaction) common.Address {
	from, err := types.Sender(signer, tx)
	if err != nil {
		log.Debug().Str("tx_hash", tx.Hash().Hex()).Err(err).Msg("Failed to recover transaction sender")
		return common.Address{}
	}

	return from
}
