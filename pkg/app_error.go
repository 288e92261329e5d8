package pkg

import "fmt"

// AppError is the error envelope returned by the HTTP layer.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Retryable  bool   `json:"retryable"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// HTTPError is the JSON body written for an AppError.
type HTTPError struct {
	Error AppErrorBody `json:"error"`
}

type AppErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// WithField names the offending input field.
func (e *AppError) WithField(field string) *AppError {
	cp := *e
	cp.Field = field
	return &cp
}

// AsRetryable marks the failure as transient.
func (e *AppError) AsRetryable() *AppError {
	cp := *e
	cp.Retryable = true
	return &cp
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ToHTTPError renders the client-facing body. The wrapped cause is never
// exposed.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Error: AppErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Field:     e.Field,
		Retryable: e.Retryable,
	}}
}
