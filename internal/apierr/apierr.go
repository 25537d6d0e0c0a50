package apierr

import (
  "errors"
  "fmt"
  "net/http"
)

// Error codes carried across the service boundary. Handlers map Status to
// the HTTP response; callers branch on Code.
const (
  CodeNotFound       = "not_found"
  CodeValidation     = "validation"
  CodePersistence    = "persistence"
  CodePartialReport  = "partial_report"
  CodeIncompleteData = "incomplete_data"
)

type Error struct {
  Status int
  Code   string
  Err    error
}

func (e *Error) Error() string {
  if e == nil {
    return ""
  }
  if e.Err != nil {
    return e.Err.Error()
  }
  if e.Code != "" {
    return e.Code
  }
  if e.Status != 0 {
    return fmt.Sprintf("api error (%d)", e.Status)
  }
  return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
  return &Error{Status: status, Code: code, Err: err}
}

func NotFound(err error) *Error {
  return New(http.StatusNotFound, CodeNotFound, err)
}

func Validation(err error) *Error {
  return New(http.StatusBadRequest, CodeValidation, err)
}

// Persistence marks a transient store failure. The caller may retry the
// same request without further cleanup.
func Persistence(err error) *Error {
  return New(http.StatusInternalServerError, CodePersistence, err)
}

func PartialReport(err error) *Error {
  return New(http.StatusInternalServerError, CodePartialReport, err)
}

func IncompleteData(err error) *Error {
  return New(http.StatusInternalServerError, CodeIncompleteData, err)
}

// CodeOf extracts the apierr code from anywhere in the chain, or "".
func CodeOf(err error) string {
  var apiErr *Error
  if errors.As(err, &apiErr) {
    return apiErr.Code
  }
  return ""
}

// StatusOf extracts the HTTP status, defaulting to 500 for plain errors.
func StatusOf(err error) int {
  var apiErr *Error
  if errors.As(err, &apiErr) && apiErr.Status != 0 {
    return apiErr.Status
  }
  return http.StatusInternalServerError
}
