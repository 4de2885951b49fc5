package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util"
)

const (
	shortTimeout = 3 * time.Second
)

// WithServer builds a server from config, runs fn against it and shuts it
// down again. The error returned by fn is passed through.
func WithServer(ctx context.Context, config config.Server, fn func(ctx context.Context, s *api.Server) error) error {
	util.ConfigureGlobalLogger(config.Logger.Level, config.Logger.PrettyPrintConsole)

	s, err := api.InitNewServer(config)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}
	}()

	start := time.Now()
	if err := fn(ctx, s); err != nil {
		log.Debug().Err(err).Dur("duration", time.Since(start)).Msg("Command failed")
		return err
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("Command finished")

	return nil
}

// NewSubcommandGroup returns a command that only prints its help and groups subcommands.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to print help: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}
