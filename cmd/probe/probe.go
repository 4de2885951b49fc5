package probe

import (
	"github.com/spf13/cobra"
	"github/chapool/evm-wallet/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

// New groups the probes used by container health checks. Both exit
// non-zero on failure and only log with --verbose.
func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
