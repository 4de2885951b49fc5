package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/api/router"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/util"
)

const (
	probeFlag string = "probe"

	shutdownTimeout = 10 * time.Second
)

type Flags struct {
	Probe bool
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON server

Requires configuration through ENV and
a reachable RPC endpoint for chain access.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Probe, probeFlag, "p", false, "Probe the default RPC endpoint before startup.")

	return cmd
}

func runServer(flags Flags) {
	cfg := config.DefaultServiceConfigFromEnv()

	util.ConfigureGlobalLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	ctx := context.Background()
	if err := initializeWallet(ctx, s); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet")
	}

	if flags.Probe {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.Management.ProbeReadinessTimeout)
		err := s.Probe(probeCtx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Readiness probe failed")
		}
	}

	if err := router.Init(s); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize router")
	}

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().Str("listen_address", cfg.Echo.ListenAddress).Str("version", config.GetFormattedBuildArgs()).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}
}
