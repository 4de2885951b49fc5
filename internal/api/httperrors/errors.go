package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/types"
)

// HTTPError is an error with a public JSON representation.
// Internal is logged but never sent to the client.
type HTTPError struct {
	types.HTTPError
	Internal error `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  int64(code),
			Type:  string(errorType),
			Title: title,
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail

	return e
}

// NewFromEcho converts an echo error (e.g. echo.ErrNotFound) into an HTTPError.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  int64(e.Code),
			Type:  string(types.PublicHTTPErrorTypeGeneric),
			Title: http.StatusText(e.Code),
		},
		Internal: e.Internal,
	}
}

func (e *HTTPError) Error() string {
	var msg string
	if len(e.Detail) > 0 {
		msg = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		msg = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}

	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy of e carrying err for logging.
func (e *HTTPError) WithInternal(err error) *HTTPError {
	c := *e
	c.Internal = err

	return &c
}

type HTTPValidationError struct {
	types.HTTPValidationError
	Internal error `json:"-"`
}

func NewHTTPValidationError(code int, errorType types.PublicHTTPErrorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		HTTPValidationError: types.HTTPValidationError{
			HTTPError: types.HTTPError{
				Code:  int64(code),
				Type:  string(errorType),
				Title: title,
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	msg := fmt.Sprintf("HTTPValidationError %d (%s): %s", e.Code, e.Type, e.Title)
	for _, v := range e.ValidationErrors {
		msg = fmt.Sprintf("%s - %s: %s", msg, deref(v.Key), deref(v.Error))
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}

	return msg
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
