package httperrors

import (
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

var kindStatus = map[errs.Kind]int{
	errs.KindInvalidKeyFormat:     http.StatusBadRequest,
	errs.KindInvalidKeyEncoding:   http.StatusBadRequest,
	errs.KindInvalidMnemonic:      http.StatusBadRequest,
	errs.KindUnsupportedWordCount: http.StatusBadRequest,
	errs.KindInvalidArgument:      http.StatusBadRequest,
	errs.KindUnknownNetwork:       http.StatusBadRequest,
	errs.KindSigningUnavailable:   http.StatusBadRequest,
	errs.KindGasEstimationFailed:  http.StatusUnprocessableEntity,
	errs.KindInsufficientFunds:    http.StatusUnprocessableEntity,
	errs.KindNotFound:             http.StatusNotFound,
	errs.KindSubmissionFailed:     http.StatusBadGateway,
	errs.KindTransport:            http.StatusBadGateway,
	errs.KindEntropy:              http.StatusInternalServerError,
}

// StatusForKind maps a wallet error kind to the HTTP status it is served with.
func StatusForKind(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// FromWalletError converts a classified wallet error into an HTTPError.
// It returns nil for errors without a kind. Upstream failures keep their
// message in Detail unless hideDetails is set.
func FromWalletError(err error, hideDetails bool) *HTTPError {
	kind := errs.KindOf(err)
	if kind == errs.KindUnknown {
		return nil
	}

	status := StatusForKind(kind)
	errorType := types.PublicHTTPErrorType(kind.String())
	if status < http.StatusInternalServerError {
		return NewHTTPError(status, errorType, err.Error()).WithInternal(err)
	}

	title := http.StatusText(status)
	switch kind {
	case errs.KindSubmissionFailed:
		title = "The node rejected the transaction"
	case errs.KindTransport:
		title = "The blockchain node could not be reached"
	}

	if hideDetails {
		return NewHTTPError(status, errorType, title).WithInternal(err)
	}

	return NewHTTPErrorWithDetail(status, errorType, title, err.Error()).WithInternal(err)
}

// FromValidationError converts a payload validation failure into a 400.
func FromValidationError(err error) *HTTPValidationError {
	var v *types.ValidationError
	if !errors.As(err, &v) {
		return nil
	}

	e := NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeValidation, "Bad Request", v.Details)
	e.Internal = err

	return e
}
