// internal/signup/errors.go
package signup

import (
	"fmt"
	"net/http"
	"strings"
)

// StatusError is an error that carries an HTTP status code and a client-safe
// message. Every rejection the pipeline produces satisfies it; anything else
// reaching the handler is an internal failure.
type StatusError interface {
	error
	HTTPStatus() int
}

type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) HTTPStatus() int { return e.status }

// ErrUnsupportedMedia rejects request encodings other than JSON and multipart.
var ErrUnsupportedMedia error = statusError{
	status: http.StatusUnsupportedMediaType,
	msg:    "unsupported content type; use application/json or multipart/form-data",
}

// ErrInvalidBody rejects absent or non-object JSON bodies.
var ErrInvalidBody error = statusError{
	status: http.StatusBadRequest,
	msg:    "request body must be a JSON object",
}

// ErrInvalidVariant rejects missing or unrecognized formType values.
var ErrInvalidVariant error = statusError{
	status: http.StatusBadRequest,
	msg:    `formType must be one of "attendee", "vip", "sponsor"`,
}

// ErrMultipartVariant rejects multipart submissions for non-attendee variants.
var ErrMultipartVariant error = statusError{
	status: http.StatusBadRequest,
	msg:    "multipart submissions are accepted for the attendee form only",
}

// FieldsError reports every missing or invalid required field for a variant.
type FieldsError struct {
	Variant string
	Fields  []string
}

func (e *FieldsError) Error() string {
	return fmt.Sprintf("%s submission missing or invalid required fields: %s",
		e.Variant, strings.Join(e.Fields, ", "))
}

func (e *FieldsError) HTTPStatus() int { return http.StatusBadRequest }
