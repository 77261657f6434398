package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ConfigurationError signals a missing or invalid connector setting. The
// message names the setting to check so the caller can fix it without
// reading logs.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

func IsConfigurationError(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// TransportError covers network-level failures talking to the catalog API.
// Timeout distinguishes a connection timeout from other transport faults;
// both are user-reportable but suggest different remedies.
type TransportError struct {
	Message string
	Timeout bool
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func NewTransportError(message string, timeout bool, cause error) *TransportError {
	return &TransportError{Message: message, Timeout: timeout, Cause: cause}
}

func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// HTTPStatusError is a non-2xx reply from the catalog API. Body is kept for
// diagnostics.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("catalog API returned HTTP %d", e.StatusCode)
}

func NewHTTPStatusError(statusCode int, body string) *HTTPStatusError {
	return &HTTPStatusError{StatusCode: statusCode, Body: body}
}

func IsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var he *HTTPStatusError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// EmptyResponseError is a 2xx reply with an empty body. It is kept distinct
// from a transport failure because the connection itself worked.
type EmptyResponseError struct {
	Message string
}

func (e *EmptyResponseError) Error() string {
	return e.Message
}

func NewEmptyResponseError(message string) *EmptyResponseError {
	return &EmptyResponseError{Message: message}
}

func IsEmptyResponseError(err error) (*EmptyResponseError, bool) {
	var ee *EmptyResponseError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// XMLDecodeError is a malformed response body. The offending payload rides
// along so the failure can be diagnosed without re-issuing the request.
type XMLDecodeError struct {
	Message string
	Body    string
	Cause   error
}

func (e *XMLDecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *XMLDecodeError) Unwrap() error {
	return e.Cause
}

func NewXMLDecodeError(message, body string, cause error) *XMLDecodeError {
	return &XMLDecodeError{Message: message, Body: body, Cause: cause}
}

func IsXMLDecodeError(err error) (*XMLDecodeError, bool) {
	var xe *XMLDecodeError
	if errors.As(err, &xe) {
		return xe, true
	}
	return nil, false
}

// CatalogAPIError is a well-formed error envelope from the catalog service
// (TransactionHeader/Exception), carrying the remote number, message and
// description verbatim.
type CatalogAPIError struct {
	Number      string
	Message     string
	Description string
}

func (e *CatalogAPIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("catalog error %s: %s\n%s", e.Number, e.Message, e.Description)
	}
	return fmt.Sprintf("catalog error %s: %s", e.Number, e.Message)
}

func NewCatalogAPIError(number, message, description string) *CatalogAPIError {
	return &CatalogAPIError{Number: number, Message: message, Description: description}
}

func IsCatalogAPIError(err error) (*CatalogAPIError, bool) {
	var ce *CatalogAPIError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
