package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

// signEIP1559Transaction signs an EIP-1559 transaction
func (s *service) signEIP1559Transaction(_ context.Context, key Key, req *SignEVMRequest) (*SignEVMResponse, error) {
	// Verify from address matches the key
	if derived := key.Account(); derived != req.From {
		return nil, errs.Newf(errs.KindSigningUnavailable, "sign transaction",
			"from address %s does not match signing key %s", req.From.Hex(), derived.Hex())
	}

	if req.ChainID == nil || req.MaxFeePerGas == nil || req.MaxPriorityFeePerGas == nil {
		return nil, errs.New(errs.KindInvalidArgument, "sign transaction", "chain id and fee caps are required")
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	to := req.To

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   req.ChainID,
		Nonce:     req.Nonce,
		GasTipCap: req.MaxPriorityFeePerGas,
		GasFeeCap: req.MaxFeePerGas,
		Gas:       req.GasLimit,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})

	signedTx, err := key.SignTx(tx, req.ChainID)
	if err != nil {
		return nil, err
	}

	// Encode transaction to its binary (typed envelope) form
	txBytes, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignEVMResponse{
		Transaction:    signedTx,
		RawTransaction: txBytes,
		TxHash:         signedTx.Hash(),
	}, nil
}
