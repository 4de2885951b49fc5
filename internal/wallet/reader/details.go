package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
)

func (s *service) TransactionDetails(ctx context.Context, hash common.Hash, endpoint network.Endpoint) (*Receipt, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	tx, pending, err := p.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, wrapLookup("get transaction", endpoint, err)
	}
	if pending {
		return nil, errs.Newf(errs.KindNotFound, "get transaction", "transaction %s is still pending", hash.Hex())
	}

	receipt, err := p.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, wrapLookup("get transaction receipt", endpoint, err)
	}

	header, err := p.HeaderByNumber(ctx, receipt.BlockNumber)
	if err != nil {
		return nil, wrapLookup("get block header", endpoint, err)
	}

	signer, err := chainSigner(ctx, p, endpoint)
	if err != nil {
		return nil, err
	}

	record := buildReceipt(signer, tx, receipt, header)

	return &record, nil
}

func chainSigner(ctx context.Context, p provider.Provider, endpoint network.Endpoint) (types.Signer, error) {
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "get chain id", endpoint.URL, err)
	}

	return types.LatestSignerForChainID(chainID), nil
}

// buildReceipt joins tx, receipt and header. The fee is effectiveGasPrice *
// gasUsed; burnt fees are baseFee * gasUsed, or zero before London.
func buildReceipt(signer types.Signer, tx *types.Transaction, receipt *types.Receipt, header *types.Header) Receipt {
	gasUsed := new(big.Int).SetUint64(receipt.GasUsed)

	effective := receipt.EffectiveGasPrice
	if effective == nil {
		effective = tx.GasPrice()
	}

	burnt := new(big.Int)
	if header.BaseFee != nil {
		burnt.Mul(header.BaseFee, gasUsed)
	}

	status := StatusFailed
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = StatusSuccess
	}

	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	return Receipt{
		TransactionHash:   tx.Hash(),
		BlockNumber:       blockNumber,
		From:              senderOf(signer, tx),
		To:                tx.To(),
		Amount:            tx.Value(),
		GasUsed:           receipt.GasUsed,
		GasLimit:          tx.Gas(),
		GasPrice:          tx.GasPrice(),
		EffectiveGasPrice: effective,
		TransactionFee:    new(big.Int).Mul(effective, gasUsed),
		BurntFees:         burnt,
		TransactionIndex:  receipt.TransactionIndex,
		Timestamp:         header.Time,
		Status:            status,
	}
}
