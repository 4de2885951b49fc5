package wallet

import (
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

func newCreate() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generates a random wallet",
		Long: `Generates a wallet from a fresh random key and prints
its private key, public key and address as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			w, err := keys.GenerateRandom()
			if err != nil {
				return err
			}

			return printWallet(w)
		},
	}
}
