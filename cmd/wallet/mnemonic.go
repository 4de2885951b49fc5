package wallet

import (
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

const (
	wordsFlag string = "words"
	pathFlag  string = "path"

	defaultWordCount = 24
)

func newMnemonic() *cobra.Command {
	var words int

	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generates a BIP-39 mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phrase, err := keys.GenerateMnemonic(words)
			if err != nil {
				return err
			}

			//nolint:forbidigo // CLI output
			fmt.Fprintln(cmd.OutOrStdout(), phrase)

			return nil
		},
	}

	cmd.Flags().IntVarP(&words, wordsFlag, "w", defaultWordCount, "Number of words: 12, 15, 18, 21 or 24.")

	return cmd
}

func newDerive() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives a wallet from a mnemonic",
		Long: `Reads a mnemonic from the terminal (hidden) or stdin and derives
the wallet at the given BIP-44 path.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			phrase, err := readSecret("Mnemonic: ")
			if err != nil {
				return err
			}

			w, err := keys.DeriveFromMnemonic(phrase, path)
			if err != nil {
				return err
			}

			return printWallet(w)
		},
	}

	cmd.Flags().StringVarP(&path, pathFlag, "p", keys.DefaultDerivationPath, "BIP-44 derivation path.")

	return cmd
}
