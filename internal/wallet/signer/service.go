package signer

import (
	"context"

	"github/chapool/evm-wallet/internal/wallet/errs"
)

type service struct{}

// NewService creates a new SignerService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// SignEVMTransaction signs an EVM transaction (EIP-1559)
func (s *service) SignEVMTransaction(ctx context.Context, key Key, req *SignEVMRequest) (*SignEVMResponse, error) {
	if key == nil || !key.CanSign() {
		return nil, errs.New(errs.KindSigningUnavailable, "sign transaction", "no signing key available")
	}

	return s.signEIP1559Transaction(ctx, key, req)
}
