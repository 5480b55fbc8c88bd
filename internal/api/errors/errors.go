package errors

import (
	"net/http"

	apperrors "whisperd/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest         ErrorKind = "bad_request"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// MissingFileMessage is the exact body text for a request without a file part.
const MissingFileMessage = "no file"

// APIError is serialised as {"error": message}. Kind and request id stay off the wire.
type APIError struct {
	Kind      ErrorKind `json:"-"`
	Message   string    `json:"error"`
	RequestID string    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// NewMissingFileError is the 400 returned when no "file" part was sent.
func NewMissingFileError() *APIError {
	return NewBadRequestError(MissingFileMessage)
}

// FromError maps a domain error to its API form, keeping the original message.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	if apperrors.KindOf(err) == apperrors.KindMissingFile {
		return NewMissingFileError()
	}
	return NewInternalError(err.Error())
}
