package api

import (
	"context"

	"github.com/go-openapi/swag"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/network"
)

// ResolveNetwork maps an optional request field to an endpoint.
func (s *Server) ResolveNetwork(ctx context.Context, name *string) (network.Endpoint, error) {
	return s.Networks.Resolve(ctx, swag.StringValue(name))
}

// SigningWallet returns the wallet for the request's private key, falling
// back to the configured PRIVATE_KEY.
func (s *Server) SigningWallet(privateKey *string) (*keys.Wallet, error) {
	key := swag.StringValue(privateKey)
	if key == "" {
		key = s.Config.Wallet.DefaultPrivateKey
	}
	if key == "" {
		return nil, errs.New(errs.KindSigningUnavailable, "select signing key", "private_key is required when the server has no configured key")
	}

	return keys.FromPrivateKey(key)
}
