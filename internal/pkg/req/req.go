/*
Package req binds HTTP request bodies and query strings into typed inputs.

JSON bodies are decoded strictly and then checked against `validate` struct tags;
every failure is reported as an *errs.CustomError ready for resp.RespondError.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"boardrtc/internal/pkg/errs"
)

// MaxFormMemory is the in-memory budget for multipart parsing; larger file parts
// spill to temporary files.
const MaxFormMemory int64 = 32 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindJSON decodes the JSON body of r into dst and validates it.
// Unknown fields and trailing data are rejected.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return Validate(dst)
}

// Validate runs the struct tag validation on v.
func Validate(v any) *errs.CustomError {
	if err := validate.Struct(v); err != nil {
		return errs.NewError(errs.ErrInvalidParams)
	}
	return nil
}

// SetupMultipart caps the body at maxBytes and parses the multipart form.
func SetupMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page int
	Size int
}

// Offset is the number of rows to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// QueryPagination reads ?page= and ?size= with the given default size. Page must
// be at least 1 and size between 1 and maxSize.
func QueryPagination(r *http.Request, defaultSize, maxSize int) (Pagination, *errs.CustomError) {
	p := Pagination{Page: 1, Size: defaultSize}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errs.NewError(errs.ErrInvalidParams)
		}
		p.Page = n
	}

	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSize {
			return p, errs.NewError(errs.ErrInvalidParams)
		}
		p.Size = n
	}

	return p, nil
}

// PathInt64 parses a positive integer path value, e.g. a chi URL parameter.
func PathInt64(raw string) (int64, *errs.CustomError) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}
	return n, nil
}
