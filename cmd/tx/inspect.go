package tx

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util/command"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

const (
	dumpFlag string = "dump"
)

type inspectFlags struct {
	Network string
	Dump    bool
}

func newInspect() *cobra.Command {
	var flags inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect <tx-hash>",
		Short: "Prints a mined transaction with its receipt",
		Long: `Looks up a transaction and its receipt and prints the
joined record as JSON. Pending transactions are reported as not found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Network, networkFlag, "n", "", "Network name or RPC URL, defaults to RPC_ENDPOINT.")
	cmd.Flags().BoolVar(&flags.Dump, dumpFlag, false, "Dump the raw record instead of JSON.")

	return cmd
}

func runInspect(cmd *cobra.Command, rawHash string, flags inspectFlags) error {
	if len(common.FromHex(rawHash)) != common.HashLength {
		return errs.Newf(errs.KindInvalidArgument, "inspect transaction", "invalid transaction hash %q", rawHash)
	}
	hash := common.HexToHash(rawHash)

	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		endpoint, err := s.ResolveNetwork(ctx, &flags.Network)
		if err != nil {
			return err
		}

		record, err := s.Reader.TransactionDetails(ctx, hash, endpoint)
		if err != nil {
			return err
		}

		if flags.Dump {
			spew.Fdump(cmd.OutOrStdout(), record)
			return nil
		}

		return printJSON(cmd.OutOrStdout(), record)
	})
}
