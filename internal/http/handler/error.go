package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// transportCode is the closed transport-level error vocabulary. Status
// codes are decided from it in exactly one place, statusOf below; handlers
// never pick a status themselves.
type transportCode string

const (
	codeBadRequest    transportCode = "BAD_REQUEST"
	codeNotFound      transportCode = "NOT_FOUND"
	codeConflict      transportCode = "CONFLICT"
	codeUnavailable   transportCode = "SERVICE_UNAVAILABLE"
	codeInternalError transportCode = "INTERNAL_ERROR"
)

func statusOf(code transportCode) int {
	switch code {
	case codeBadRequest:
		return fiber.StatusBadRequest
	case codeNotFound:
		return fiber.StatusNotFound
	case codeConflict:
		return fiber.StatusConflict
	case codeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// fromDomainError maps every domain code onto a transport code plus the
// message the client is allowed to see. The mapping is total: business
// failures keep their message, infrastructure failures are replaced by a
// generic one so operation names and driver detail never leak.
func fromDomainError(derr *service.DomainError) (transportCode, string) {
	switch derr.Code {
	case service.CodeDocumentNotFound, service.CodeFileNotFound,
		service.CodeDownloadTokenExpired, service.CodeDownloadTokenInvalid:
		return codeNotFound, derr.Message
	case service.CodeInvalidFileType, service.CodeFileTooLarge, service.CodeInvalidSearchTags:
		return codeBadRequest, derr.Message
	case service.CodeDownloadTokenAlreadyUsed:
		return codeConflict, derr.Message
	case service.CodeServiceUnavailable:
		return codeUnavailable, "service temporarily unavailable"
	default:
		return codeInternalError, "internal server error"
	}
}

// respondError renders any service failure as the standardized error
// response. Every handler routes its error path through here, so the
// domain-to-transport translation happens once and uniformly.
func respondError(c *fiber.Ctx, err error) error {
	var derr *service.DomainError
	if errors.As(err, &derr) {
		code, message := fromDomainError(derr)
		status := statusOf(code)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(derr).Str("request_id", requestIDFromCtx(c)).Msg("request failed")
		}
		return writeError(c, status, string(code), message)
	}

	log.Error().Err(err).Str("request_id", requestIDFromCtx(c)).Msg("unclassified handler error")
	return writeError(c, fiber.StatusInternalServerError, string(codeInternalError), "internal server error")
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes
// router-level error responses (unmatched routes, wrong methods, oversized
// bodies). Service failures never reach it; handlers translate those via
// respondError.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "REQUEST_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
