package wallet

import (
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

func walletResponse(w *keys.Wallet) *types.WalletResponse {
	return &types.WalletResponse{
		Address:    w.Address,
		PrivateKey: w.PrivateKey,
		PublicKey:  w.PublicKey,
		Mnemonic:   w.Mnemonic,
	}
}
