package reader_test

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/test"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/reader"
)

var (
	endpoint = network.NewEndpoint("http://localhost:8545")
	token    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	alice    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob      = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	chainID  = big.NewInt(1337)
)

func newReader(t *testing.T, p *test.StubProvider) reader.Service {
	t.Helper()

	r, err := reader.NewService(p.Dialer())
	require.NoError(t, err)

	return r
}

func word(v int64) []byte {
	return common.LeftPadBytes(big.NewInt(v).Bytes(), 32)
}

func signedTx(t *testing.T, nonce uint64, to common.Address, value int64) *types.Transaction {
	t.Helper()

	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)

	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(chainID), &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(3_000_000_000),
		Gas:       21_000,
		To:        &to,
		Value:     big.NewInt(value),
	})
	require.NoError(t, err)

	return tx
}

func TestTokenBalance(t *testing.T) {
	var call ethereum.CallMsg
	p := &test.StubProvider{
		CallContractFn: func(_ context.Context, msg ethereum.CallMsg) ([]byte, error) {
			call = msg
			return word(1_500_000), nil
		},
	}

	balance, err := newReader(t, p).TokenBalance(t.Context(), alice, token, endpoint)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_500_000), balance)

	assert.Equal(t, &token, call.To)
	require.Len(t, call.Data, 36)
	assert.Equal(t, "70a08231", common.Bytes2Hex(call.Data[:4]))
	assert.Equal(t, alice, common.BytesToAddress(call.Data[4:]))
}

func TestTokenBalanceShortResponse(t *testing.T) {
	p := &test.StubProvider{
		CallContractFn: func(context.Context, ethereum.CallMsg) ([]byte, error) { return nil, nil },
	}

	_, err := newReader(t, p).TokenBalance(t.Context(), alice, token, endpoint)
	assert.Equal(t, errs.KindTransport, errs.KindOf(err))
}

func TestTokenDecimalsCached(t *testing.T) {
	var calls atomic.Int32
	p := &test.StubProvider{
		CallContractFn: func(_ context.Context, msg ethereum.CallMsg) ([]byte, error) {
			calls.Add(1)
			assert.Equal(t, "313ce567", common.Bytes2Hex(msg.Data))
			return word(6), nil
		},
	}
	r := newReader(t, p)

	for range 3 {
		decimals, err := r.TokenDecimals(t.Context(), token, endpoint)
		require.NoError(t, err)
		assert.Equal(t, uint8(6), decimals)
	}
	assert.Equal(t, int32(1), calls.Load())

	_, err := r.TokenDecimals(t.Context(), token, network.NewEndpoint("http://other:8545"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenDecimalsOutOfRange(t *testing.T) {
	p := &test.StubProvider{
		CallContractFn: func(context.Context, ethereum.CallMsg) ([]byte, error) { return word(256), nil },
	}

	_, err := newReader(t, p).TokenDecimals(t.Context(), token, endpoint)
	assert.Equal(t, errs.KindTransport, errs.KindOf(err))
}

func detailsStub(t *testing.T, tx *types.Transaction, baseFee *big.Int, status uint64) *test.StubProvider {
	t.Helper()

	return &test.StubProvider{
		ChainIDValue: chainID,
		TransactionByHashFn: func(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
			require.Equal(t, tx.Hash(), hash)
			return tx, false, nil
		},
		TransactionReceiptFn: func(context.Context, common.Hash) (*types.Receipt, error) {
			return &types.Receipt{
				Status:            status,
				GasUsed:           21_000,
				EffectiveGasPrice: big.NewInt(2_000_000_000),
				BlockNumber:       big.NewInt(42),
				TransactionIndex:  3,
			}, nil
		},
		HeaderByNumberFn: func(_ context.Context, number *big.Int) (*types.Header, error) {
			require.Equal(t, int64(42), number.Int64())
			return &types.Header{Number: number, Time: 1_700_000_000, BaseFee: baseFee}, nil
		},
	}
}

func TestTransactionDetails(t *testing.T) {
	tx := signedTx(t, 0, bob, 1_000)
	p := detailsStub(t, tx, big.NewInt(1_000_000_000), types.ReceiptStatusSuccessful)

	details, err := newReader(t, p).TransactionDetails(t.Context(), tx.Hash(), endpoint)
	require.NoError(t, err)

	assert.Equal(t, tx.Hash(), details.TransactionHash)
	assert.Equal(t, uint64(42), details.BlockNumber)
	assert.Equal(t, alice, details.From)
	require.NotNil(t, details.To)
	assert.Equal(t, bob, *details.To)
	assert.Equal(t, big.NewInt(1_000), details.Amount)
	assert.Equal(t, big.NewInt(42_000_000_000_000), details.TransactionFee)
	assert.Equal(t, big.NewInt(21_000_000_000_000), details.BurntFees)
	assert.Equal(t, uint(3), details.TransactionIndex)
	assert.Equal(t, uint64(1_700_000_000), details.Timestamp)
	assert.Equal(t, reader.StatusSuccess, details.Status)
}

func TestTransactionDetailsPreLondon(t *testing.T) {
	tx := signedTx(t, 0, bob, 1)
	p := detailsStub(t, tx, nil, types.ReceiptStatusFailed)

	details, err := newReader(t, p).TransactionDetails(t.Context(), tx.Hash(), endpoint)
	require.NoError(t, err)
	assert.Zero(t, details.BurntFees.Sign())
	assert.Equal(t, reader.StatusFailed, details.Status)
}

func TestTransactionDetailsNotFound(t *testing.T) {
	p := &test.StubProvider{
		TransactionByHashFn: func(context.Context, common.Hash) (*types.Transaction, bool, error) {
			return nil, false, errors.Wrap(ethereum.NotFound, "failed to get transaction")
		},
	}

	_, err := newReader(t, p).TransactionDetails(t.Context(), common.HexToHash("0x01"), endpoint)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	pending := signedTx(t, 0, bob, 1)
	p.TransactionByHashFn = func(context.Context, common.Hash) (*types.Transaction, bool, error) {
		return pending, true, nil
	}
	_, err = newReader(t, p).TransactionDetails(t.Context(), pending.Hash(), endpoint)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestTokenTransfers(t *testing.T) {
	var query ethereum.FilterQuery
	p := &test.StubProvider{
		FilterLogsFn: func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			query = q
			return []types.Log{
				{
					Topics:      []common.Hash{reader.TransferTopic, common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())},
					Data:        word(500_000),
					BlockNumber: 10,
					TxHash:      common.HexToHash("0xaa"),
					Index:       2,
				},
				{
					// non-standard: amount indexed, no data
					Topics: []common.Hash{reader.TransferTopic, common.BytesToHash(alice.Bytes())},
				},
			}, nil
		},
	}

	from, to := uint64(5), uint64(20)
	events, err := newReader(t, p).TokenTransfers(t.Context(), reader.TokenTransferQuery{
		Token:     token,
		FromBlock: &from,
		ToBlock:   &to,
		From:      &alice,
	}, endpoint)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, alice, events[0].From)
	assert.Equal(t, bob, events[0].To)
	assert.Equal(t, big.NewInt(500_000), events[0].Amount)
	assert.Equal(t, uint(2), events[0].LogIndex)
	assert.Equal(t, uint64(10), events[0].BlockNumber)

	assert.Equal(t, []common.Address{token}, query.Addresses)
	assert.Equal(t, int64(5), query.FromBlock.Int64())
	assert.Equal(t, int64(20), query.ToBlock.Int64())
	require.Len(t, query.Topics, 2)
	assert.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), query.Topics[0][0])
	assert.Equal(t, common.BytesToHash(alice.Bytes()), query.Topics[1][0])
}

func TestTransferTopic(t *testing.T) {
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", reader.TransferTopic.Hex())
}

func scanStub(t *testing.T, latest uint64, blocks map[uint64][]*types.Transaction) (*test.StubProvider, *[]uint64) {
	t.Helper()

	visited := make([]uint64, 0)
	return &test.StubProvider{
		ChainIDValue:  chainID,
		BlockNumberFn: func(context.Context) (uint64, error) { return latest, nil },
		BlockByNumberFn: func(_ context.Context, number *big.Int) (*types.Block, error) {
			visited = append(visited, number.Uint64())
			txs, ok := blocks[number.Uint64()]
			if !ok {
				return nil, errors.New("block unavailable")
			}
			header := &types.Header{Number: number, Time: 1_000 + number.Uint64(), BaseFee: big.NewInt(1)}
			return types.NewBlockWithHeader(header).WithBody(types.Body{Transactions: txs}), nil
		},
		TransactionReceiptFn: func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			return &types.Receipt{Status: types.ReceiptStatusSuccessful, GasUsed: 21_000, EffectiveGasPrice: big.NewInt(2), BlockNumber: big.NewInt(0)}, nil
		},
	}, &visited
}

func TestNativeTransfersByAddress(t *testing.T) {
	toBob := signedTx(t, 0, bob, 10)
	zeroValue := signedTx(t, 1, bob, 0)
	toToken := signedTx(t, 2, token, 5)

	p, visited := scanStub(t, 3, map[uint64][]*types.Transaction{
		1: {toBob, zeroValue},
		3: {toToken},
	})

	from, to := uint64(1), uint64(3)
	records, err := newReader(t, p).NativeTransfers(t.Context(), reader.NativeTransferQuery{
		Address:   &bob,
		FromBlock: &from,
		ToBlock:   &to,
	}, endpoint)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, toBob.Hash(), records[0].TransactionHash)
	assert.Equal(t, uint64(1_001), records[0].Timestamp)
	assert.Equal(t, []uint64{1, 2, 3}, *visited)

	// the sender matches as well
	records, err = newReader(t, p).NativeTransfers(t.Context(), reader.NativeTransferQuery{
		Address:   &alice,
		FromBlock: &from,
		ToBlock:   &to,
	}, endpoint)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestNativeTransfersAll(t *testing.T) {
	p, visited := scanStub(t, 150, map[uint64][]*types.Transaction{
		50:  {signedTx(t, 0, bob, 0)},
		150: {signedTx(t, 1, bob, 1), signedTx(t, 2, token, 0)},
	})

	records, err := newReader(t, p).NativeTransfers(t.Context(), reader.NativeTransferQuery{}, endpoint)
	require.NoError(t, err)

	assert.Len(t, records, 3)
	require.Len(t, *visited, reader.DefaultScanDepth+1)
	assert.Equal(t, uint64(50), (*visited)[0])
	assert.Equal(t, uint64(150), (*visited)[reader.DefaultScanDepth])
}

func TestNativeTransfersInvalidRange(t *testing.T) {
	p, _ := scanStub(t, 10, nil)
	from, to := uint64(9), uint64(3)

	_, err := newReader(t, p).NativeTransfers(t.Context(), reader.NativeTransferQuery{FromBlock: &from, ToBlock: &to}, endpoint)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestNativeTransfersMaxScanBlocks(t *testing.T) {
	p, _ := scanStub(t, 10, nil)
	r, err := reader.NewService(p.Dialer(), reader.WithMaxScanBlocks(5))
	require.NoError(t, err)

	from, to := uint64(0), uint64(5)
	_, err = r.NativeTransfers(t.Context(), reader.NativeTransferQuery{FromBlock: &from, ToBlock: &to}, endpoint)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	to = 4
	_, err = r.NativeTransfers(t.Context(), reader.NativeTransferQuery{FromBlock: &from, ToBlock: &to}, endpoint)
	require.NoError(t, err)
}

func TestCurrentBlockAndBalance(t *testing.T) {
	p := &test.StubProvider{
		BlockNumberFn: func(context.Context) (uint64, error) { return 99, nil },
		BalanceAtFn: func(_ context.Context, account common.Address) (*big.Int, error) {
			if account == alice {
				return big.NewInt(7), nil
			}
			return nil, errors.New("unreachable")
		},
	}
	r := newReader(t, p)

	number, err := r.CurrentBlock(t.Context(), endpoint)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), number)

	balance, err := r.NativeBalance(t.Context(), alice, endpoint)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), balance)

	_, err = r.NativeBalance(t.Context(), bob, endpoint)
	assert.Equal(t, errs.KindTransport, errs.KindOf(err))
	assert.Contains(t, err.Error(), endpoint.URL)
}
