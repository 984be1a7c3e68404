package apperror

import (
	"errors"
	"net/http"
)

// Public messages returned in error bodies.
const (
	MsgRecipeNotFound  = "Requested recipe not found"
	MsgRecipesNotFound = "No recipes found"
	MsgBadRequest      = "Bad Request, please check request parameters"
	MsgInternal        = "Unknown error occurred, please consult with support"
	MsgConflict        = "Recipe already present"
	MsgTooManyRequests = "Too many requests, please try again later"
)

var (
	ErrBadInput        = errors.New("bad input")
	ErrUnprocessable   = errors.New("unprocessable input")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrStorageFailure  = errors.New("storage failure")
	ErrTooManyRequests = errors.New("too many requests")
)

// AppError pairs an error kind with the message shown to the caller.
// Cause is kept for logging only and never rendered.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func BadInput() *AppError {
	return &AppError{Kind: ErrBadInput, Message: MsgBadRequest}
}

// Unprocessable reports a field constraint violation; message is the validator's text.
func Unprocessable(message string) *AppError {
	return &AppError{Kind: ErrUnprocessable, Message: message}
}

func RecipeNotFound() *AppError {
	return &AppError{Kind: ErrNotFound, Message: MsgRecipeNotFound}
}

func RecipesNotFound() *AppError {
	return &AppError{Kind: ErrNotFound, Message: MsgRecipesNotFound}
}

func Conflict() *AppError {
	return &AppError{Kind: ErrConflict, Message: MsgConflict}
}

func StorageFailure(cause error) *AppError {
	return &AppError{Kind: ErrStorageFailure, Message: MsgInternal, Cause: cause}
}

func TooManyRequests() *AppError {
	return &AppError{Kind: ErrTooManyRequests, Message: MsgTooManyRequests}
}

// HTTPStatus maps an error to its response code. Unknown errors are 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show the caller.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return MsgInternal
}
