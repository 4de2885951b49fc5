package tx

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util/command"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/reader"
)

const (
	fromFlag    string = "from"
	toFlag      string = "to"
	addressFlag string = "address"
	tokenFlag   string = "token"
)

type scanFlags struct {
	Network string
	From    uint64
	To      uint64
	Address string
	Token   string
}

func newScan() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scans a block range for transfers",
		Long: `Scans a block range for native transfers, or for ERC20
Transfer logs when --token is set. Without --from the last 100 blocks
before --to (default latest) are scanned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Network, networkFlag, "n", "", "Network name or RPC URL, defaults to RPC_ENDPOINT.")
	cmd.Flags().Uint64Var(&flags.From, fromFlag, 0, "First block of the range.")
	cmd.Flags().Uint64Var(&flags.To, toFlag, 0, "Last block of the range.")
	cmd.Flags().StringVarP(&flags.Address, addressFlag, "a", "", "Only transfers from or to this address (token scans: from only).")
	cmd.Flags().StringVarP(&flags.Token, tokenFlag, "t", "", "ERC20 token contract to scan logs of.")

	return cmd
}

func runScan(cmd *cobra.Command, flags scanFlags) error {
	var fromBlock, toBlock *uint64
	if cmd.Flags().Changed(fromFlag) {
		fromBlock = &flags.From
	}
	if cmd.Flags().Changed(toFlag) {
		toBlock = &flags.To
	}

	var address *common.Address
	if flags.Address != "" {
		a, err := keys.ParseAddress(flags.Address)
		if err != nil {
			return err
		}
		address = &a
	}

	var token *common.Address
	if flags.Token != "" {
		t, err := keys.ParseAddress(flags.Token)
		if err != nil {
			return err
		}
		token = &t
	}

	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		endpoint, err := s.ResolveNetwork(ctx, &flags.Network)
		if err != nil {
			return err
		}

		if token != nil {
			events, err := s.Reader.TokenTransfers(ctx, reader.TokenTransferQuery{
				Token:     *token,
				FromBlock: fromBlock,
				ToBlock:   toBlock,
				From:      address,
			}, endpoint)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), events)
		}

		records, err := s.Reader.NativeTransfers(ctx, reader.NativeTransferQuery{
			Address:   address,
			FromBlock: fromBlock,
			ToBlock:   toBlock,
		}, endpoint)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), records)
	})
}
