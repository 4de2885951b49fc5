package transaction

import (
	"math/big"

	"github.com/go-openapi/swag"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/wallet/reader"
	"github/chapool/evm-wallet/internal/wallet/transfer"
)

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}

	return v.String()
}

func receiptResponse(r reader.Receipt) types.TransactionReceipt {
	var to *string
	if r.To != nil {
		to = swag.String(r.To.Hex())
	}

	return types.TransactionReceipt{
		TransactionHash:   r.TransactionHash.Hex(),
		BlockNumber:       r.BlockNumber,
		FromAddress:       r.From.Hex(),
		ToAddress:         to,
		Amount:            weiString(r.Amount),
		GasUsed:           r.GasUsed,
		GasLimit:          r.GasLimit,
		GasPrice:          weiString(r.GasPrice),
		EffectiveGasPrice: weiString(r.EffectiveGasPrice),
		TransactionFee:    weiString(r.TransactionFee),
		BurntFees:         weiString(r.BurntFees),
		TransactionIndex:  uint64(r.TransactionIndex),
		Timestamp:         r.Timestamp,
		Status:            r.Status,
	}
}

func historyResponse(records []reader.Receipt) *types.TransactionHistoryResponse {
	res := &types.TransactionHistoryResponse{
		Transactions: make([]types.TransactionReceipt, 0, len(records)),
	}
	for _, r := range records {
		res.Transactions = append(res.Transactions, receiptResponse(r))
	}

	return res
}

func transactionResponse(r *transfer.Result) *types.TransactionResponse {
	return &types.TransactionResponse{
		Hash:   r.TxHash.Hex(),
		Status: types.TransactionStatusSubmitted,
		From:   r.From.Hex(),
		Nonce:  r.Nonce,
	}
}

func estimateResponse(e *transfer.Estimate) *types.GasEstimateResponse {
	return &types.GasEstimateResponse{
		GasLimit:             e.GasLimit,
		GasPrice:             weiString(e.GasPrice),
		TotalFee:             weiString(e.TotalFee),
		MaxFeePerGas:         weiString(e.Quote.MaxFeePerGas),
		MaxPriorityFeePerGas: weiString(e.Quote.MaxPriorityFeePerGas),
		TotalNeeded:          weiString(e.TotalNeeded),
		Balance:              weiString(e.Balance),
		FeeSource:            string(e.Quote.Source),
	}
}
