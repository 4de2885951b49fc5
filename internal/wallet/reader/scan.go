package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
)

func (s *service) TokenTransfers(ctx context.Context, query TokenTransferQuery, endpoint network.Endpoint) ([]TransferEvent, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	from, to, err := s.resolveRange(ctx, p, query.FromBlock, query.ToBlock, endpoint)
	if err != nil {
		return nil, err
	}

	topics := [][]common.Hash{{TransferTopic}}
	if query.From != nil {
		topics = append(topics, []common.Hash{common.BytesToHash(query.From.Bytes())})
	}

	logs, err := p.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{query.Token},
		Topics:    topics,
	})
	if err != nil {
		return nil, errs.WrapEndpoint(errs.KindTransport, "filter logs", endpoint.URL, err)
	}

	events := make([]TransferEvent, 0, len(logs))
	for _, l := range logs {
		event, ok := decodeTransfer(l)
		if !ok {
			log.Debug().Str("tx_hash", l.TxHash.Hex()).Uint("log_index", l.Index).Msg("Skipping non-standard Transfer log")
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// decodeTransfer reads from/to from the indexed topics and the amount from
// the first data word.
func decodeTransfer(l types.Log) (TransferEvent, bool) {
	if len(l.Topics) < transferTopicsCount || l.Topics[0] != TransferTopic || len(l.Data) < abiWordLength {
		return TransferEvent{}, false
	}

	return TransferEvent{
		TransactionHash: l.TxHash,
		BlockNumber:     l.BlockNumber,
		From:            common.BytesToAddress(l.Topics[1].Bytes()),
		To:              common.BytesToAddress(l.Topics[2].Bytes()),
		Amount:          new(big.Int).SetBytes(l.Data[:abiWordLength]),
		LogIndex:        l.Index,
	}, true
}

// NativeTransfers walks every block of the range. Blocks and receipts that
// cannot be read are skipped.
func (s *service) NativeTransfers(ctx context.Context, query NativeTransferQuery, endpoint network.Endpoint) ([]Receipt, error) {
	p, err := s.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	from, to, err := s.resolveRange(ctx, p, query.FromBlock, query.ToBlock, endpoint)
	if err != nil {
		return nil, err
	}

	signer, err := chainSigner(ctx, p, endpoint)
	if err != nil {
		return nil, err
	}

	records := make([]Receipt, 0)
	for number := from; number <= to; number++ {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.KindTransport, "scan blocks", err)
		}

		block, err := p.BlockByNumber(ctx, new(big.Int).SetUint64(number))
		if err != nil {
			log.Warn().Str("endpoint", endpoint.URL).Uint64("block", number).Err(err).Msg("Skipping unreadable block")
			continue
		}

		header := block.Header()
		for _, tx := range block.Transactions() {
			if query.Address != nil && !matchesAddress(signer, tx, *query.Address) {
				continue
			}

			receipt, err := p.TransactionReceipt(ctx, tx.Hash())
			if err != nil {
				log.Warn().Str("endpoint", endpoint.URL).Str("tx_hash", tx.Hash().Hex()).Err(err).Msg("Skipping transaction without receipt")
				continue
			}

			records = append(records, buildReceipt(signer, tx, receipt, header))
		}

		if number == to {
			break
		}
	}

	log.Debug().
		Str("endpoint", endpoint.URL).
		Uint64("from_block", from).
		Uint64("to_block", to).
		Int("matches", len(records)).
		Msg("Scanned blocks for native transfers")

	return records, nil
}

func matchesAddress(signer types.Signer, tx *types.Transaction, address common.Address) bool {
	if tx.Value().Sign() <= 0 {
		return false
	}
	if to := tx.To(); to != nil && *to == address {
		return true
	}

	return senderOf(signer, tx) == address
}

func (s *service) resolveRange(ctx context.Context, p provider.Provider, fromBlock *uint64, toBlock *uint64, endpoint network.Endpoint) (uint64, uint64, error) {
	if fromBlock != nil && toBlock != nil {
		return s.checkRange(*fromBlock, *toBlock)
	}

	latest, err := p.BlockNumber(ctx)
	if err != nil {
		return 0, 0, errs.WrapEndpoint(errs.KindTransport, "get block number", endpoint.URL, err)
	}

	to := latest
	if toBlock != nil {
		to = *toBlock
	}

	from := uint64(0)
	if fromBlock != nil {
		from = *fromBlock
	} else if to > DefaultScanDepth {
		from = to - DefaultScanDepth
	}

	return s.checkRange(from, to)
}

func (s *service) checkRange(from uint64, to uint64) (uint64, uint64, error) {
	if from > to {
		return 0, 0, errs.Newf(errs.KindInvalidArgument, "block range", "from_block %d is after to_block %d", from, to)
	}
	if s.maxScanBlocks > 0 && to-from >= s.maxScanBlocks {
		return 0, 0, errs.Newf(errs.KindInvalidArgument, "block range", "range %d..%d spans more than %d blocks", from, to, s.maxScanBlocks)
	}

	return from, to, nil
}
