package provider_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/wallet/provider"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// fakeNode answers JSON-RPC calls from a method to result table. Methods
// missing from the table get a JSON-RPC "method not found" error.
func fakeNode(t *testing.T, results map[string]any, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if result, ok := results[req.Method]; ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "the method " + req.Method + " does not exist"}
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func deadNode(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// rejectingNode answers every JSON-RPC call with the given error message.
func rejectingNode(t *testing.T, message string, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]any{"code": -32000, "message": message},
		}))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func signedTx(t *testing.T) *types.Transaction {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, To: &to, Value: big.NewInt(1), Gas: 21000, GasPrice: big.NewInt(1)})
	signed, err := types.SignTx(tx, types.HomesteadSigner{}, key)
	require.NoError(t, err)

	return signed
}

func TestClientBasicCalls(t *testing.T) {
	var calls atomic.Int32
	node := fakeNode(t, map[string]any{
		"eth_chainId":              "0x1",
		"eth_gasPrice":             "0x3b9aca00",
		"eth_maxPriorityFeePerGas": "0x5f5e100",
		"eth_blockNumber":          "0x10",
		"eth_getBalance":           "0xde0b6b3a7640000",
	}, &calls)

	client, err := provider.Dial(t.Context(), node.URL)
	require.NoError(t, err)
	defer client.Close()

	chainID, err := client.ChainID(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID.Int64())

	price, err := client.SuggestGasPrice(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), price.Int64())

	tip, err := client.MaxPriorityFeePerGas(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_000), tip.Int64())

	number, err := client.BlockNumber(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), number)

	balance, err := client.BalanceAt(t.Context(), common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.String())
}

func TestClientFailover(t *testing.T) {
	var deadCalls, liveCalls atomic.Int32
	dead := deadNode(t, &deadCalls)
	live := fakeNode(t, map[string]any{"eth_gasPrice": "0x2"}, &liveCalls)

	client, err := provider.Dial(t.Context(), dead.URL+","+live.URL)
	require.NoError(t, err)
	defer client.Close()

	price, err := client.SuggestGasPrice(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(2), price.Int64())
	assert.Equal(t, int32(1), deadCalls.Load())

	// the healthy node becomes current
	_, err = client.SuggestGasPrice(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int32(1), deadCalls.Load())
	assert.Equal(t, int32(2), liveCalls.Load())
}

func TestClientRPCErrorDoesNotFailover(t *testing.T) {
	var first, second atomic.Int32
	a := fakeNode(t, map[string]any{}, &first)
	b := fakeNode(t, map[string]any{"eth_maxPriorityFeePerGas": "0x1"}, &second)

	client, err := provider.Dial(t.Context(), a.URL+","+b.URL)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.MaxPriorityFeePerGas(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get max priority fee")
	assert.Equal(t, int32(0), second.Load())
}

func TestSendTransactionAlreadyKnownIsSubmitted(t *testing.T) {
	var dead, known atomic.Int32
	a := deadNode(t, &dead)
	b := rejectingNode(t, "already known", &known)

	client, err := provider.Dial(t.Context(), a.URL+","+b.URL)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.SendTransaction(t.Context(), signedTx(t)))
	assert.Equal(t, int32(1), dead.Load())
	assert.Equal(t, int32(1), known.Load())

	var besu atomic.Int32
	c := rejectingNode(t, "Known transaction", &besu)

	other, err := provider.Dial(t.Context(), c.URL)
	require.NoError(t, err)
	defer other.Close()

	require.NoError(t, other.SendTransaction(t.Context(), signedTx(t)))
}

func TestSendTransactionRejected(t *testing.T) {
	var first, second atomic.Int32
	a := rejectingNode(t, "nonce too low", &first)
	b := rejectingNode(t, "already known", &second)

	client, err := provider.Dial(t.Context(), a.URL+","+b.URL)
	require.NoError(t, err)
	defer client.Close()

	err = client.SendTransaction(t.Context(), signedTx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low")
	assert.Equal(t, int32(0), second.Load())
}

func TestClientNotFound(t *testing.T) {
	var calls atomic.Int32
	node := fakeNode(t, map[string]any{"eth_getTransactionReceipt": nil}, &calls)

	client, err := provider.Dial(t.Context(), node.URL)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.TransactionReceipt(t.Context(), common.HexToHash("0x01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ethereum.NotFound)
}

func TestDialRequiresURL(t *testing.T) {
	_, err := provider.Dial(t.Context(), " , ")
	require.Error(t, err)

	_, err = provider.Dial(t.Context(), "unsupported://node")
	require.Error(t, err)
}
