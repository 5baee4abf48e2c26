package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"boardrtc/internal/pkg/logx"
)

// CustomError is the error returned to HTTP clients: a business code, a user
// facing message and the HTTP status to answer with.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a CustomError from a registered code. Details are printf
// arguments for messages that carry a placeholder; for ErrUnknown the first
// detail may be the underlying error, which is logged and never exposed.
// An unregistered code yields ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	tmpl, ok := errorMap[code]
	if !ok {
		logx.Error(errors.New("error code missing from errorMap"), "Unknown error code requested", "requested_code", code)
		tmpl = errorMap[ErrUnknown]
	}

	customErr := tmpl
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) == 0 {
		return &customErr
	}

	if customErr.Code == ErrUnknown {
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
		return &customErr
	}

	if strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	} else {
		logx.Warn("Error details ignored, message has no placeholder", "code", code)
	}

	return &customErr
}

// Internal logs cause and returns ErrUnknown.
func Internal(cause error) *CustomError {
	return NewError(ErrUnknown, cause)
}
