package server

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

// initializeWallet checks the configured signing key and logs the networks
// the server will answer for. A malformed PRIVATE_KEY aborts startup instead
// of failing every send request later.
func initializeWallet(ctx context.Context, s *api.Server) error {
	if key := s.Config.Wallet.DefaultPrivateKey; key != "" {
		w, err := keys.FromPrivateKey(key)
		if err != nil {
			return errors.Wrap(err, "failed to parse configured private key")
		}

		log.Info().Str("address", w.Address).Msg("Default signing wallet configured")
	} else {
		log.Info().Msg("No default signing wallet configured, requests must carry private_key")
	}

	def := s.Networks.Default()
	log.Info().Str("rpc_url", def.URL).Str("tag", string(def.Identity())).Msg("Default network")

	endpoints, err := s.Networks.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list networks")
	}

	for _, e := range endpoints {
		log.Info().Str("network", e.Name).Str("rpc_url", e.URL).Str("tag", string(e.Identity())).Msg("Named network")
	}

	return nil
}
