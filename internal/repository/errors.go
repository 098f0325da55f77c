package repository

import "fmt"

// StorageErrorCode enumerates the closed set of storage-layer failure kinds.
// Absent rows on direct primary-key lookups are not errors; those are
// reported as a nil result. Only token validity is an error here, because
// the expiry comparison is evaluated as part of the lookup query itself.
type StorageErrorCode string

const (
	StorageConnectionFailure   StorageErrorCode = "CONNECTION_FAILURE"
	StorageTimeout             StorageErrorCode = "TIMEOUT"
	StorageConstraintViolation StorageErrorCode = "CONSTRAINT_VIOLATION"
	StorageUnknown             StorageErrorCode = "UNKNOWN"
	StorageTokenNotFound       StorageErrorCode = "TOKEN_NOT_FOUND"
	StorageTokenExpired        StorageErrorCode = "TOKEN_EXPIRED"
)

// StorageError is the only error type repositories are allowed to return.
// Callers (the service layer) translate it into their own vocabulary exactly
// once, at the call site; driver errors never travel past this package.
type StorageError struct {
	Code       StorageErrorCode
	Constraint string // violated constraint name, for CONSTRAINT_VIOLATION
	Token      string // offending token, for TOKEN_NOT_FOUND / TOKEN_EXPIRED
	Message    string // original driver message, preserved for UNKNOWN
	Cause      error  // underlying driver error, never exposed upward
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	switch e.Code {
	case StorageConstraintViolation:
		return fmt.Sprintf("storage [%s]: constraint %q violated", e.Code, e.Constraint)
	case StorageTokenNotFound, StorageTokenExpired:
		return fmt.Sprintf("storage [%s]: token %q", e.Code, e.Token)
	case StorageUnknown:
		return fmt.Sprintf("storage [%s]: %s", e.Code, e.Message)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("storage [%s]: %v", e.Code, e.Cause)
		}
		return fmt.Sprintf("storage [%s]", e.Code)
	}
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewConnectionFailure reports that the backing store could not be reached.
func NewConnectionFailure(cause error) *StorageError {
	return &StorageError{Code: StorageConnectionFailure, Cause: cause}
}

// NewTimeout reports that a storage call exceeded its deadline.
func NewTimeout(cause error) *StorageError {
	return &StorageError{Code: StorageTimeout, Cause: cause}
}

// NewConstraintViolation reports a violated database constraint by name.
func NewConstraintViolation(constraint string, cause error) *StorageError {
	return &StorageError{Code: StorageConstraintViolation, Constraint: constraint, Cause: cause}
}

// NewUnknown wraps an unclassified storage failure, preserving its message
// for internal error reporting.
func NewUnknown(message string, cause error) *StorageError {
	return &StorageError{Code: StorageUnknown, Message: message, Cause: cause}
}

// NewTokenNotFound reports that no download token row matches the given value.
func NewTokenNotFound(token string) *StorageError {
	return &StorageError{Code: StorageTokenNotFound, Token: token}
}

// NewTokenExpired reports that the token row exists but its expiry instant
// has passed, as determined by the lookup query.
func NewTokenExpired(token string) *StorageError {
	return &StorageError{Code: StorageTokenExpired, Token: token}
}
