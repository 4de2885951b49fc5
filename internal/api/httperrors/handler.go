package httperrors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
)

// HTTPErrorHandler renders every error returned by a handler as JSON.
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromContext(c.Request().Context())
		code, body := resolve(err, hideInternalServerErrorDetails)

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", code).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", code).Msg("Request rejected")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			log.Error().Err(writeErr).AnErr("origin", err).Msg("Failed to write error response")
		}
	}
}

func resolve(err error, hideInternal bool) (int, interface{}) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return int(httpErr.Code), httpErr
	}

	var validationErr *HTTPValidationError
	if errors.As(err, &validationErr) {
		return int(validationErr.Code), validationErr
	}

	if v := FromValidationError(err); v != nil {
		return int(v.Code), v
	}

	if w := FromWalletError(err, hideInternal); w != nil {
		return int(w.Code), w
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		e := NewFromEcho(echoErr)
		if echoErr.Code == http.StatusBadRequest {
			if msg, ok := echoErr.Message.(string); ok {
				e.Title = msg
			}
		}

		return echoErr.Code, e
	}

	e := NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeInternal, http.StatusText(http.StatusInternalServerError))
	if !hideInternal {
		e.Detail = err.Error()
	}

	return http.StatusInternalServerError, e
}
