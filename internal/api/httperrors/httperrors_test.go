package httperrors_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/api/httperrors"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind errs.Kind
		want int
	}{
		{errs.KindInvalidKeyFormat, http.StatusBadRequest},
		{errs.KindInvalidMnemonic, http.StatusBadRequest},
		{errs.KindUnknownNetwork, http.StatusBadRequest},
		{errs.KindSigningUnavailable, http.StatusBadRequest},
		{errs.KindInsufficientFunds, http.StatusUnprocessableEntity},
		{errs.KindGasEstimationFailed, http.StatusUnprocessableEntity},
		{errs.KindNotFound, http.StatusNotFound},
		{errs.KindSubmissionFailed, http.StatusBadGateway},
		{errs.KindTransport, http.StatusBadGateway},
		{errs.KindEntropy, http.StatusInternalServerError},
		{errs.KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, httperrors.StatusForKind(tt.kind))
		})
	}
}

func TestFromWalletError(t *testing.T) {
	assert.Nil(t, httperrors.FromWalletError(errors.New("plain"), false))

	err := errs.New(errs.KindInvalidMnemonic, "from mnemonic", "checksum mismatch")
	e := httperrors.FromWalletError(err, true)
	require.NotNil(t, e)
	assert.Equal(t, int64(http.StatusBadRequest), e.Code)
	assert.Equal(t, "invalid_mnemonic", e.Type)
	assert.Equal(t, err.Error(), e.Title)
	assert.Empty(t, e.Detail)
	assert.ErrorIs(t, e, err)
}

func TestFromWalletErrorUpstream(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.WrapEndpoint(errs.KindTransport, "get balance", "http://localhost:8545", cause)

	e := httperrors.FromWalletError(err, false)
	require.NotNil(t, e)
	assert.Equal(t, int64(http.StatusBadGateway), e.Code)
	assert.Equal(t, "transport", e.Type)
	assert.Equal(t, "The blockchain node could not be reached", e.Title)
	assert.Contains(t, e.Detail, "connection refused")

	hidden := httperrors.FromWalletError(err, true)
	require.NotNil(t, hidden)
	assert.Empty(t, hidden.Detail)
	assert.ErrorIs(t, hidden, cause)
}
