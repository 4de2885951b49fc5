package wallet

import (
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

func newAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Prints the address of a private key",
		Long: `Reads a hex private key from the terminal (hidden) or stdin
and prints the checksummed address it controls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := readSecret("Private key: ")
			if err != nil {
				return err
			}

			address, err := keys.AddressFromPrivateKey(key)
			if err != nil {
				return err
			}

			//nolint:forbidigo // CLI output
			fmt.Fprintln(cmd.OutOrStdout(), address)

			return nil
		},
	}
}
