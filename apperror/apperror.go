// Package apperror defines the closed set of application error kinds and their
// mapping to HTTP statuses. Every failure in the request pipeline surfaces as an
// *AppError so the responder can decide, in one place, which messages are safe
// to return verbatim and which must be replaced with a generic message while the
// real cause is recorded for operators.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorType enumerates the application error kinds.
type ErrorType int

const (
	// UnknownError is for unclassified errors.
	UnknownError ErrorType = iota
	// AuthError represents an authentication failure (missing, invalid or
	// expired credentials). Deliberately undifferentiated so responses never
	// reveal why authentication failed.
	AuthError
	// ForbiddenError represents an authorization failure (authenticated but
	// not allowed).
	ForbiddenError
	// NotFoundError represents a missing resource.
	NotFoundError
	// ValidationError represents one or more violated field constraints on an
	// otherwise well-formed payload.
	ValidationError
	// BadRequestError represents a malformed request: undecodable body, wrong
	// content type, type mismatches. Distinct from ValidationError.
	BadRequestError
	// ConflictError represents a uniqueness conflict, e.g. a duplicate email.
	ConflictError
	// DatabaseError represents a storage-layer fault.
	DatabaseError
	// ConfigError represents an invalid application configuration.
	ConfigError
	// InternalError represents any other unexpected internal fault.
	InternalError
)

// AppError is the application error type. Message is what the taxonomy allows
// a client to see for this kind; Err is the underlying cause, kept for
// operators and never rendered to clients for internal kinds.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind. The switch is
// exhaustive over the taxonomy; an unknown kind is an internal fault.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ConfigError, InternalError, UnknownError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether the error is an internal fault whose detail must
// not reach the client.
func (e *AppError) Internal() bool {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError, UnknownError:
		return true
	default:
		return false
	}
}

// ClientMessage returns the message a client is allowed to see. Validation,
// conflict and malformed-request messages pass through verbatim; internal
// kinds are replaced with a fixed generic message; auth, forbidden and
// not-found kinds always use their fixed generic messages regardless of how
// the error was constructed.
func (e *AppError) ClientMessage() string {
	switch e.Type {
	case AuthError:
		return "authentication required"
	case ForbiddenError:
		return "you may not perform that action"
	case NotFoundError:
		return "not found"
	case ValidationError, BadRequestError, ConflictError:
		return e.Message
	default:
		return "an internal server error occurred"
	}
}

// NewAppError creates a new AppError of an arbitrary kind.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewAuthError creates an authentication error (401).
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewForbiddenError creates an authorization error (403).
func NewForbiddenError(message string, underlyingError error) *AppError {
	return NewAppError(ForbiddenError, message, underlyingError)
}

// NewNotFoundError creates a missing-resource error (404).
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a constraint-violation error (422).
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a malformed-request error (400).
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewConflictError creates a uniqueness-conflict error (409).
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewDatabaseError creates a storage-fault error (500).
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a configuration error (500).
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewInternalError creates a generic internal fault (500).
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// OnConstraint maps a PostgreSQL unique-constraint violation on the named
// constraint to a ConflictError carrying the caller-supplied message. The
// match is by the pre-declared constraint name only, never by inspecting the
// error text. Any other error is returned unchanged.
func OnConstraint(err error, constraintName, message string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraintName {
		return NewConflictError(message, nil)
	}
	return err
}

// ErrorResponse is the JSON body rendered for every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// ToResponse converts an AppError to the client-facing response body. Only
// the kind-appropriate message is included, never the underlying cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.ClientMessage()}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks whether an error in the chain is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks whether an error in the chain is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks whether an error in the chain is a ValidationError.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks whether an error in the chain is a ConflictError.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
