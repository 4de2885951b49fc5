package types

import (
	"strings"

	"github.com/go-openapi/swag"
)

type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric          PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeValidation       PublicHTTPErrorType = "validation"
	PublicHTTPErrorTypeNotFound         PublicHTTPErrorType = "not_found"
	PublicHTTPErrorTypeInternal         PublicHTTPErrorType = "internal"
	PublicHTTPErrorTypeServiceNotReady  PublicHTTPErrorType = "service_not_ready"
	PublicHTTPErrorTypeMalformedRequest PublicHTTPErrorType = "malformed_request"
)

// HTTPError is the JSON body of every non-2xx response.
type HTTPError struct {
	Code   int64  `json:"status"`
	Title  string `json:"error"`
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

type HTTPValidationErrorDetail struct {
	Key   *string `json:"key"`
	In    *string `json:"in"`
	Error *string `json:"error"`
}

type HTTPValidationError struct {
	HTTPError
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// ValidationError collects payload problems found by Validate.
type ValidationError struct {
	Details []*HTTPValidationErrorDetail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, swag.StringValue(d.Key)+": "+swag.StringValue(d.Error))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(key string, msg string) {
	e.Details = append(e.Details, &HTTPValidationErrorDetail{
		Key:   swag.String(key),
		In:    swag.String("body"),
		Error: swag.String(msg),
	})
}

func (e *ValidationError) required(key string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		e.add(key, "required")
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}

	return e
}
