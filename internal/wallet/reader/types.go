package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/evm-wallet/internal/wallet/network"
)

// Service answers read-only chain queries.
type Service interface {
	NativeBalance(ctx context.Context, account common.Address, endpoint network.Endpoint) (*big.Int, error)
	TokenBalance(ctx context.Context, account common.Address, token common.Address, endpoint network.Endpoint) (*big.Int, error)
	TokenDecimals(ctx context.Context, token common.Address, endpoint network.Endpoint) (uint8, error)
	CurrentBlock(ctx context.Context, endpoint network.Endpoint) (uint64, error)
	TransactionDetails(ctx context.Context, hash common.Hash, endpoint network.Endpoint) (*Receipt, error)
	TokenTransfers(ctx context.Context, query TokenTransferQuery, endpoint network.Endpoint) ([]TransferEvent, error)
	NativeTransfers(ctx context.Context, query NativeTransferQuery, endpoint network.Endpoint) ([]Receipt, error)
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Receipt is a transaction joined with its receipt and block header.
// To is nil for contract creations.
type Receipt struct {
	TransactionHash   common.Hash
	BlockNumber       uint64
	From              common.Address
	To                *common.Address
	Amount            *big.Int
	GasUsed           uint64
	GasLimit          uint64
	GasPrice          *big.Int
	EffectiveGasPrice *big.Int
	TransactionFee    *big.Int
	BurntFees         *big.Int
	TransactionIndex  uint
	Timestamp         uint64
	Status            string
}

// TransferEvent is a decoded ERC20 Transfer log.
type TransferEvent struct {
	TransactionHash common.Hash
	BlockNumber     uint64
	From            common.Address
	To              common.Address
	Amount          *big.Int
	LogIndex        uint
}

// TokenTransferQuery selects Transfer logs of Token. A nil block bound
// defaults like NativeTransferQuery; From filters on the indexed sender.
type TokenTransferQuery struct {
	Token     common.Address
	FromBlock *uint64
	ToBlock   *uint64
	From      *common.Address
}

// NativeTransferQuery selects transactions in a block range. With Address
// set, only value transfers from or to it match; without, every
// transaction matches. FromBlock defaults to latest-DefaultScanDepth and
// ToBlock to latest.
type NativeTransferQuery struct {
	Address   *common.Address
	FromBlock *uint64
	ToBlock   *uint64
}
