package util

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validator is implemented by every request payload and response body.
type Validator interface {
	Validate() error
}

// BindAndValidateBody binds the JSON request body into v and validates it.
// An empty body leaves v at its zero value before validation.
func BindAndValidateBody(c echo.Context, v Validator) error {
	if c.Request().ContentLength != 0 {
		if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
			LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Failed to bind request body")
			return echo.NewHTTPError(http.StatusBadRequest, "Malformed JSON body.").SetInternal(err)
		}
	}

	return v.Validate()
}

// ValidateAndReturn validates the response before sending it as JSON.
// An invalid response is a programming error and surfaces as a 500.
func ValidateAndReturn(c echo.Context, code int, v Validator) error {
	if err := v.Validate(); err != nil {
		LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response validation failed")
		return errors.Wrap(err, "failed to validate response")
	}

	return c.JSON(code, v)
}
