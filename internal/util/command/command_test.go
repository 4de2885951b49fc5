package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/test"
	"github/chapool/evm-wallet/internal/util/command"
)

func TestWithServer(t *testing.T) {
	cfg := test.TestServerConfig()
	cfg.Logger.PrettyPrintConsole = false

	var testError = errors.New("test error")

	resultErr := command.WithServer(t.Context(), cfg, func(_ context.Context, s *api.Server) error {
		require.NotNil(t, s.Networks)
		assert.Equal(t, "http://localhost:8545", s.Networks.Default().URL)
		assert.NotNil(t, s.Reader)

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestWithServerSuccess(t *testing.T) {
	called := false

	err := command.WithServer(t.Context(), test.TestServerConfig(), func(_ context.Context, _ *api.Server) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestNewSubcommandGroup(t *testing.T) {
	group := command.NewSubcommandGroup("wallet",
		&cobra.Command{Use: "new"},
		&cobra.Command{Use: "address"},
	)

	assert.Equal(t, "wallet", group.Use)
	assert.Equal(t, "wallet related subcommands", group.Short)
	assert.Len(t, group.Commands(), 2)
}
