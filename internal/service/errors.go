package service

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"docvault/internal/repository"
)

// DomainErrorCode enumerates the closed set of business-level failure kinds.
// This is the only error vocabulary the service layer speaks; storage codes
// are translated into it exactly once, at the repository call site.
type DomainErrorCode string

const (
	CodeDocumentNotFound         DomainErrorCode = "DOCUMENT_NOT_FOUND"
	CodeFileNotFound             DomainErrorCode = "FILE_NOT_FOUND"
	CodeInvalidFileType          DomainErrorCode = "INVALID_FILE_TYPE"
	CodeFileTooLarge             DomainErrorCode = "FILE_TOO_LARGE"
	CodeInvalidSearchTags        DomainErrorCode = "INVALID_SEARCH_TAGS"
	CodeDownloadTokenExpired     DomainErrorCode = "DOWNLOAD_TOKEN_EXPIRED"
	CodeDownloadTokenInvalid     DomainErrorCode = "DOWNLOAD_TOKEN_INVALID"
	CodeDownloadTokenAlreadyUsed DomainErrorCode = "DOWNLOAD_TOKEN_ALREADY_USED"
	CodeServiceUnavailable       DomainErrorCode = "SERVICE_UNAVAILABLE"
	CodeServiceUnknown           DomainErrorCode = "SERVICE_UNKNOWN"
)

// DomainError carries a business failure with a machine-readable code,
// a human-readable message, and the payload fields relevant to its code.
// The HTTP layer decides status codes and client wording from the code
// alone; Message and Cause exist for logs and internal reporting.
type DomainError struct {
	Code       DomainErrorCode
	Message    string
	DocumentID int64  // DOCUMENT_NOT_FOUND
	Path       string // FILE_NOT_FOUND
	Token      string // DOWNLOAD_TOKEN_* codes
	Operation  string // SERVICE_UNAVAILABLE / SERVICE_UNKNOWN
	MaxSize    int64  // FILE_TOO_LARGE
	ActualSize int64  // FILE_TOO_LARGE
	Cause      error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("[%s] %s (operation: %s)", e.Code, e.Message, e.Operation)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDocumentNotFound reports that no document exists with the given ID.
func NewDocumentNotFound(id int64) *DomainError {
	return &DomainError{
		Code:       CodeDocumentNotFound,
		Message:    fmt.Sprintf("document %d not found", id),
		DocumentID: id,
	}
}

// NewFileNotFound reports that a document's backing file is missing from
// storage.
func NewFileNotFound(path string) *DomainError {
	return &DomainError{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("stored file %q is missing", path),
		Path:    path,
	}
}

// NewInvalidFileType rejects an upload whose declared or sniffed content
// type is not PDF.
func NewInvalidFileType(message string) *DomainError {
	return &DomainError{Code: CodeInvalidFileType, Message: message}
}

// NewFileTooLarge rejects an upload exceeding the configured size limit.
// Both sizes are reported so the client knows the limit and by how much
// it was missed.
func NewFileTooLarge(max, actual int64) *DomainError {
	return &DomainError{
		Code: CodeFileTooLarge,
		Message: fmt.Sprintf("file size %s exceeds the maximum of %s",
			humanize.Bytes(uint64(actual)), humanize.Bytes(uint64(max))),
		MaxSize:    max,
		ActualSize: actual,
	}
}

// NewInvalidSearchTags rejects a tag search with no usable tags.
func NewInvalidSearchTags(message string) *DomainError {
	return &DomainError{Code: CodeInvalidSearchTags, Message: message}
}

// NewDownloadTokenExpired reports that the download link's expiry instant
// has passed.
func NewDownloadTokenExpired(token string) *DomainError {
	return &DomainError{
		Code:    CodeDownloadTokenExpired,
		Message: "download link has expired",
		Token:   token,
	}
}

// NewDownloadTokenInvalid reports that no download link matches the given
// token.
func NewDownloadTokenInvalid(token string) *DomainError {
	return &DomainError{
		Code:    CodeDownloadTokenInvalid,
		Message: "download link is invalid",
		Token:   token,
	}
}

// NewDownloadTokenAlreadyUsed reports that the download link was already
// consumed, by this request's loser in a race or by an earlier one.
func NewDownloadTokenAlreadyUsed(token string) *DomainError {
	return &DomainError{
		Code:    CodeDownloadTokenAlreadyUsed,
		Message: "download link has already been used",
		Token:   token,
	}
}

// NewServiceUnavailable reports a transient infrastructure failure. The
// operation name stays internal; clients see only a generic message.
func NewServiceUnavailable(operation string) *DomainError {
	return &DomainError{
		Code:      CodeServiceUnavailable,
		Message:   "service temporarily unavailable",
		Operation: operation,
	}
}

// NewServiceUnknown reports an unclassified failure, preserving the
// underlying message for internal reporting.
func NewServiceUnknown(operation, message string) *DomainError {
	return &DomainError{
		Code:      CodeServiceUnknown,
		Message:   message,
		Operation: operation,
	}
}

// fromStorageError maps every storage code onto the domain vocabulary.
// The mapping is total: token validity codes become the token errors,
// transient infrastructure codes become SERVICE_UNAVAILABLE, and anything
// else becomes SERVICE_UNKNOWN. The storage error stays attached as the
// cause so logs keep the driver detail.
func fromStorageError(operation string, serr *repository.StorageError) *DomainError {
	var derr *DomainError
	switch serr.Code {
	case repository.StorageTokenNotFound:
		derr = NewDownloadTokenInvalid(serr.Token)
	case repository.StorageTokenExpired:
		derr = NewDownloadTokenExpired(serr.Token)
	case repository.StorageConnectionFailure, repository.StorageTimeout:
		derr = NewServiceUnavailable(operation)
	case repository.StorageConstraintViolation:
		derr = NewServiceUnknown(operation, serr.Error())
	default:
		derr = NewServiceUnknown(operation, serr.Message)
	}
	derr.Cause = serr
	return derr
}

// translate converts a repository failure into the domain vocabulary.
// Repositories only ever return *StorageError, but anything else still
// maps to SERVICE_UNKNOWN rather than escaping untranslated.
func translate(operation string, err error) *DomainError {
	var serr *repository.StorageError
	if errors.As(err, &serr) {
		return fromStorageError(operation, serr)
	}
	return &DomainError{
		Code:      CodeServiceUnknown,
		Message:   err.Error(),
		Operation: operation,
		Cause:     err,
	}
}
