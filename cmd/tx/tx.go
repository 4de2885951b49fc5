package tx

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/util/command"
)

const (
	networkFlag string = "network"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("tx",
		newInspect(),
		newScan(),
	)
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}

	//nolint:forbidigo // CLI output
	_, err = fmt.Fprintln(w, string(out))

	return err
}
