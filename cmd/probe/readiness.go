package probe

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util/command"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks the external dependencies",
		Long: `Pings redis if configured and queries the block number
of the default RPC endpoint.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse args")
			}

			runReadiness(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runReadiness(ctx context.Context, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	err := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.Management.ProbeReadinessTimeout)
		defer cancel()

		return s.Probe(probeCtx)
	})
	if err != nil {
		if verbose {
			log.Error().Err(err).Msg("Readiness probe failed")
		}
		os.Exit(1)
	}

	if verbose {
		log.Info().Msg("Readiness probe succeeded")
	}
}
