package probe

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util/command"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks that a server can be built from the env",
		Long: `Checks that every server component can be initialized
from the current env. Does not touch the network.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse args")
			}

			runLiveness(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func runLiveness(ctx context.Context, verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	err := command.WithServer(ctx, cfg, func(_ context.Context, s *api.Server) error {
		if s.Networks == nil || s.Reader == nil || s.Transfer == nil {
			return errors.New("server components missing")
		}

		return nil
	})
	if err != nil {
		if verbose {
			log.Error().Err(err).Msg("Liveness probe failed")
		}
		os.Exit(1)
	}

	if verbose {
		log.Info().Msg("Liveness probe succeeded")
	}
}
