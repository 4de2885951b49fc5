package provider

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/network"
)

type node struct {
	raw *rpc.Client
	eth *ethclient.Client
}

// Client wraps one ethclient per RPC URL and fails over to the next URL when
// a node cannot be reached. Errors returned by a reachable node (reverts,
// JSON-RPC errors, not found) are passed through without failover.
type Client struct {
	urls    []string
	mu      sync.Mutex
	nodes   []*node
	current int
}

var _ Provider = (*Client)(nil)

// DefaultDialer dials Clients.
var DefaultDialer Dialer = DialerFunc(func(ctx context.Context, rpcURL string) (Provider, error) {
	return Dial(ctx, rpcURL)
})

// Dial connects to every URL in a comma separated list. Unreachable URLs are
// retried on use; Dial fails only when no URL can be dialed at all.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	urls := network.ParseRPCURLs(rpcURL)
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	c := &Client{
		urls:  urls,
		nodes: make([]*node, len(urls)),
	}

	connected := 0
	for i, url := range urls {
		n, err := dialNode(ctx, url)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("Failed to connect to RPC node, will retry on use")
			continue
		}
		c.nodes[i] = n
		connected++
	}

	if connected == 0 {
		return nil, errors.Errorf("failed to connect to any RPC node of %d", len(urls))
	}

	return c, nil
}

func dialNode(ctx context.Context, url string) (*node, error) {
	raw, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", url)
	}

	return &node{raw: raw, eth: ethclient.NewClient(raw)}, nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes {
		if n != nil {
			n.eth.Close()
		}
	}
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var chainID *big.Int
	err := c.do(ctx, "get chain ID", func(n *node) (err error) {
		chainID, err = n.eth.ChainID(ctx)
		return err
	})

	return chainID, err
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number uint64
	err := c.do(ctx, "get latest block number", func(n *node) (err error) {
		number, err = n.eth.BlockNumber(ctx)
		return err
	})

	return number, err
}

func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := c.do(ctx, "get balance", func(n *node) (err error) {
		balance, err = n.eth.BalanceAt(ctx, account, nil)
		return err
	})

	return balance, err
}

func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var nonce uint64
	err := c.do(ctx, "get pending nonce", func(n *node) (err error) {
		nonce, err = n.eth.PendingNonceAt(ctx, account)
		return err
	})

	return nonce, err
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	var price *big.Int
	err := c.do(ctx, "get gas price", func(n *node) (err error) {
		price, err = n.eth.SuggestGasPrice(ctx)
		return err
	})

	return price, err
}

func (c *Client) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	var tip hexutil.Big
	err := c.do(ctx, "get max priority fee", func(n *node) error {
		return n.raw.CallContext(ctx, &tip, "eth_maxPriorityFeePerGas")
	})
	if err != nil {
		return nil, err
	}

	return tip.ToInt(), nil
}

func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var gas uint64
	err := c.do(ctx, "estimate gas", func(n *node) (err error) {
		gas, err = n.eth.EstimateGas(ctx, msg)
		return err
	})

	return gas, err
}

func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	var out []byte
	err := c.do(ctx, "call contract", func(n *node) (err error) {
		out, err = n.eth.CallContract(ctx, msg, nil)
		return err
	})

	return out, err
}

// SendTransaction treats a node that already knows tx as a successful
// submission. This covers the resend after a failover where the previous node
// accepted tx but the response got lost.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.do(ctx, "send transaction", func(n *node) error {
		err := n.eth.SendTransaction(ctx, tx)
		if err != nil && isAlreadyKnown(err) {
			log.Info().Str("tx_hash", tx.Hash().Hex()).Err(err).Msg("Node already knows transaction, treating as submitted")
			return nil
		}

		return err
	})
}

func (c *Client) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	var block *types.Block
	err := c.do(ctx, "get block by number", func(n *node) (err error) {
		block, err = n.eth.BlockByNumber(ctx, number)
		return err
	})

	return block, err
}

func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.do(ctx, "get header by number", func(n *node) (err error) {
		header, err = n.eth.HeaderByNumber(ctx, number)
		return err
	})

	return header, err
}

func (c *Client) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	var (
		tx      *types.Transaction
		pending bool
	)
	err := c.do(ctx, "get transaction", func(n *node) (err error) {
		tx, pending, err = n.eth.TransactionByHash(ctx, hash)
		return err
	})

	return tx, pending, err
}

func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := c.do(ctx, "get transaction receipt", func(n *node) (err error) {
		receipt, err = n.eth.TransactionReceipt(ctx, hash)
		return err
	})

	return receipt, err
}

func (c *Client) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.do(ctx, "filter logs", func(n *node) (err error) {
		logs, err = n.eth.FilterLogs(ctx, query)
		return err
	})

	return logs, err
}

// do runs fn against the current node and then the remaining ones in order
// until one answers.
func (c *Client) do(ctx context.Context, op string, fn func(n *node) error) error {
	start := c.currentIndex()

	var lastErr error
	for i := 0; i < len(c.urls); i++ {
		idx := (start + i) % len(c.urls)

		n, err := c.node(ctx, idx)
		if err != nil {
			lastErr = err
			continue
		}

		err = fn(n)
		if err == nil {
			c.setCurrent(idx)
			return nil
		}

		if !shouldFailover(ctx, err) {
			return errors.Wrapf(err, "failed to %s", op)
		}

		lastErr = err
		if len(c.urls) > 1 {
			log.Warn().Str("url", c.urls[idx]).Str("op", op).Err(err).Msg("RPC node failed, trying next node")
		}
	}

	return errors.Wrapf(lastErr, "failed to %s", op)
}

func (c *Client) node(ctx context.Context, idx int) (*node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := c.nodes[idx]; n != nil {
		return n, nil
	}

	n, err := dialNode(ctx, c.urls[idx])
	if err != nil {
		return nil, err
	}
	c.nodes[idx] = n

	return n, nil
}

func (c *Client) currentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

func (c *Client) setCurrent(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = idx
}

var alreadyKnownMessages = []string{
	"already known",
	"alreadyknown",
	"known transaction",
	"already imported",
}

func isAlreadyKnown(err error) bool {
	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) {
		return false
	}

	msg := strings.ToLower(rpcErr.Error())
	for _, known := range alreadyKnownMessages {
		if strings.Contains(msg, known) {
			return true
		}
	}

	return false
}

// shouldFailover reports whether err means the node itself was unusable.
func shouldFailover(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, ethereum.NotFound) {
		return false
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}

	return true
}
