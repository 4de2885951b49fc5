// Package transfer builds, signs and submits EIP-1559 transfers after a
// client side gas funds check.
package transfer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
	"github/chapool/evm-wallet/internal/wallet/signer"
)

const (
	assetNative = "native"
	assetToken  = "erc20"

	paddedWordLength = 32
	maxAmountBits    = 256
)

var erc20TransferMethodID = common.FromHex("a9059cbb")

// DefaultProbeAmount (0.01 ether) is used by native estimates without an amount.
var DefaultProbeAmount = big.NewInt(10_000_000_000_000_000)

type service struct {
	dialer   provider.Dialer
	oracle   fee.Oracle
	signer   signer.Service
	observer Observer
}

type Option func(s *service)

func WithObserver(observer Observer) Option {
	return func(s *service) {
		s.observer = observer
	}
}

// NewService creates a transfer Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(dialer provider.Dialer, oracle fee.Oracle, signerService signer.Service, opts ...Option) Service {
	s := &service{
		dialer: dialer,
		oracle: oracle,
		signer: signerService,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// EncodeTransferCall encodes transfer(address,uint256) call data.
func EncodeTransferCall(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, len(erc20TransferMethodID)+2*paddedWordLength)
	data = append(data, erc20TransferMethodID...)
	data = append(data, common.LeftPadBytes(to.Bytes(), paddedWordLength)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), paddedWordLength)...)

	return data
}

func (s *service) SendNative(ctx context.Context, key signer.Key, req Request, endpoint network.Endpoint) (*Result, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	return s.send(ctx, key, assetNative, req.To, req.Amount, nil, endpoint)
}

func (s *service) SendToken(ctx context.Context, key signer.Key, req Request, endpoint network.Endpoint) (*Result, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Token == nil {
		return nil, errs.New(errs.KindInvalidArgument, "send token", "token contract is required")
	}

	return s.send(ctx, key, assetToken, *req.Token, new(big.Int), EncodeTransferCall(req.To, req.Amount), endpoint)
}

func (s *service) EstimateNativeTransferCost(ctx context.Context, from common.Address, req Request, endpoint network.Endpoint) (*Estimate, error) {
	amount := req.Amount
	if amount == nil {
		amount = DefaultProbeAmount
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return s.estimate(ctx, p, from, req.To, amount, nil, endpoint)
}

func (s *service) EstimateTokenTransferCost(ctx context.Context, from common.Address, req Request, endpoint network.Endpoint) (*Estimate, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Token == nil {
		return nil, errs.New(errs.KindInvalidArgument, "estimate token transfer", "token contract is required")
	}

	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return s.estimate(ctx, p, from, *req.Token, new(big.Int), EncodeTransferCall(req.To, req.Amount), endpoint)
}

func (s *service) send(ctx context.Context, key signer.Key, asset string, to common.Address, value *big.Int, data []byte, endpoint network.Endpoint) (*Result, error) {
	if key == nil || !key.CanSign() {
		return nil, errs.New(errs.KindSigningUnavailable, "send "+asset, "wallet has no signing key")
	}
	from := key.Account()

	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	estimate, err := s.estimate(ctx, p, from, to, value, data, endpoint)
	if err != nil {
		s.observe(asset, "rejected")
		return nil, err
	}

	nonce, err := p.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "get nonce", endpoint.URL, err)
	}

	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "get chain id", endpoint.URL, err)
	}

	signed, err := s.signer.SignEVMTransaction(ctx, key, &signer.SignEVMRequest{
		ChainID:              chainID,
		From:                 from,
		To:                   to,
		Value:                value,
		GasLimit:             estimate.GasLimit,
		MaxFeePerGas:         estimate.Quote.MaxFeePerGas,
		MaxPriorityFeePerGas: estimate.Quote.MaxPriorityFeePerGas,
		Nonce:                nonce,
		Data:                 data,
	})
	if err != nil {
		return nil, err
	}

	if err := p.SendTransaction(ctx, signed.Transaction); err != nil {
		s.observe(asset, "failed")
		log.Error().
			Str("endpoint", endpoint.URL).
			Str("from", from.Hex()).
			Str("tx_hash", signed.TxHash.Hex()).
			Err(err).
			Msg("Failed to submit transaction")

		return nil, errs.WrapEndpoint(errs.KindSubmissionFailed, "send transaction", endpoint.URL, err)
	}

	s.observe(asset, "submitted")
	log.Info().
		Str("asset", asset).
		Str("from", from.Hex()).
		Str("to", to.Hex()).
		Uint64("nonce", nonce).
		Str("tx_hash", signed.TxHash.Hex()).
		Msg("Submitted transaction")

	return &Result{
		TxHash:   signed.TxHash,
		From:     from,
		To:       to,
		Nonce:    nonce,
		ChainID:  chainID,
		Estimate: estimate,
	}, nil
}

// estimate runs estimate -> quote -> sufficiency for a call from `from`.
// Needed funds are gasLimit*maxFee plus the attached native value.
func (s *service) estimate(ctx context.Context, p provider.Provider, from common.Address, to common.Address, value *big.Int, data []byte, endpoint network.Endpoint) (*Estimate, error) {
	gasLimit, err := p.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindGasEstimationFailed, "estimate gas", endpoint.URL, err)
	}

	quote := s.oracle.Resolve(ctx, p, endpoint)

	totalFee := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), quote.MaxFeePerGas)
	needed := new(big.Int).Add(totalFee, value)

	balance, err := p.BalanceAt(ctx, from)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "get balance", endpoint.URL, err)
	}

	if balance.Cmp(needed) < 0 {
		log.Debug().
			Str("from", from.Hex()).
			Str("balance_wei", balance.String()).
			Str("needed_wei", needed.String()).
			Uint64("gas_limit", gasLimit).
			Str("max_fee_wei", quote.MaxFeePerGas.String()).
			Msg("Insufficient funds for transfer")

		return nil, &errs.InsufficientFundsError{
			Balance:  balance,
			Needed:   needed,
			GasLimit: gasLimit,
			GasPrice: quote.MaxFeePerGas,
		}
	}

	return &Estimate{
		GasLimit:    gasLimit,
		GasPrice:    quote.MaxFeePerGas,
		TotalFee:    totalFee,
		Value:       value,
		TotalNeeded: needed,
		Balance:     balance,
		Quote:       quote,
	}, nil
}

func (s *service) dial(ctx context.Context, endpoint network.Endpoint) (provider.Provider, error) {
	p, err := s.dialer.Dial(ctx, endpoint.URL)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "dial", endpoint.URL, err)
	}

	return p, nil
}

func (s *service) observe(asset string, outcome string) {
	if s.observer != nil {
		s.observer.ObserveTransfer(asset, outcome)
	}
}

func validateAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errs.New(errs.KindInvalidArgument, "validate amount", "amount must be a non-negative integer")
	}
	if amount.BitLen() > maxAmountBits {
		return errs.New(errs.KindInvalidArgument, "validate amount", "amount does not fit into uint256")
	}

	return nil
}
