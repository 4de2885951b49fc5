package signer_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/signer"
)

const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newRequest(from common.Address) *signer.SignEVMRequest {
	return &signer.SignEVMRequest{
		ChainID:              big.NewInt(137),
		From:                 from,
		To:                   common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Value:                big.NewInt(1_000),
		GasLimit:             21_000,
		MaxFeePerGas:         big.NewInt(60_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(30_000_000_000),
		Nonce:                7,
	}
}

func TestSignEVMTransaction(t *testing.T) {
	w, err := keys.FromPrivateKey(testPrivateKey)
	require.NoError(t, err)

	resp, err := signer.NewService().SignEVMTransaction(t.Context(), w, newRequest(w.Account()))
	require.NoError(t, err)

	var decoded types.Transaction
	require.NoError(t, decoded.UnmarshalBinary(resp.RawTransaction))
	assert.Equal(t, resp.TxHash, decoded.Hash())
	assert.Equal(t, uint8(types.DynamicFeeTxType), decoded.Type())
	assert.Equal(t, uint64(7), decoded.Nonce())
	assert.Equal(t, big.NewInt(137), decoded.ChainId())

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(137)), &decoded)
	require.NoError(t, err)
	assert.Equal(t, w.Account(), sender)
}

func TestSignRejectsMismatchedFrom(t *testing.T) {
	w, err := keys.FromPrivateKey(testPrivateKey)
	require.NoError(t, err)

	_, err = signer.NewService().SignEVMTransaction(t.Context(), w, newRequest(common.HexToAddress("0x01")))
	require.Error(t, err)
	assert.Equal(t, errs.KindSigningUnavailable, errs.KindOf(err))
}

func TestSignWithoutKey(t *testing.T) {
	w := &keys.Wallet{Identity: keys.Identity{Address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"}}

	_, err := signer.NewService().SignEVMTransaction(t.Context(), w, newRequest(w.Account()))
	require.Error(t, err)
	assert.Equal(t, errs.KindSigningUnavailable, errs.KindOf(err))

	_, err = signer.NewService().SignEVMTransaction(t.Context(), nil, newRequest(w.Account()))
	assert.Equal(t, errs.KindSigningUnavailable, errs.KindOf(err))
}
