package wallet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/util/command"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"golang.org/x/term"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("wallet",
		newCreate(),
		newAddress(),
		newMnemonic(),
		newDerive(),
	)
}

// readSecret reads a secret from the terminal with echo disabled, or a single
// line from stdin when it is not a terminal.
func readSecret(prompt string) (string, error) {
	if !term.IsTerminal(syscall.Stdin) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.Wrap(err, "failed to read secret from stdin")
		}

		return strings.TrimSpace(line), nil
	}

	//nolint:forbidigo // Secret input requires direct terminal I/O
	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read secret from terminal")
	}

	//nolint:forbidigo // Secret input requires direct terminal I/O
	fmt.Fprintln(os.Stderr)

	return strings.TrimSpace(string(secret)), nil
}

func printWallet(w *keys.Wallet) error {
	out, err := json.MarshalIndent(w.Identity, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal wallet")
	}

	//nolint:forbidigo // CLI output
	fmt.Println(string(out))

	return nil
}
