package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/service"
)

func respondingApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

// The one decision table: every domain code must render a fixed status and
// transport code. Extending the domain vocabulary without extending this
// table fails here.
func TestRespondError_StatusTable(t *testing.T) {
	tests := []struct {
		name        string
		err         *service.DomainError
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "document not found",
			err:        service.NewDocumentNotFound(42),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "file not found",
			err:        service.NewFileNotFound("uploads/ghost.pdf"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "download token expired",
			err:        service.NewDownloadTokenExpired("tok"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "download token invalid",
			err:        service.NewDownloadTokenInvalid("tok"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid file type",
			err:        service.NewInvalidFileType("only PDF uploads are accepted"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "file too large",
			err:        service.NewFileTooLarge(10, 20),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid search tags",
			err:        service.NewInvalidSearchTags("at least one non-empty tag is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "download token already used",
			err:        service.NewDownloadTokenAlreadyUsed("tok"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:        "service unavailable hides the operation",
			err:         service.NewServiceUnavailable("store document metadata"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "SERVICE_UNAVAILABLE",
			wantMessage: "service temporarily unavailable",
		},
		{
			name:        "service unknown hides the detail",
			err:         service.NewServiceUnknown("fetch document", `relation "documents" does not exist`),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := respondingApp(tt.err)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body errorPayload
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Error.Message)
			} else {
				assert.Equal(t, tt.err.Message, body.Error.Message)
			}
		})
	}
}

func TestRespondError_OperationNeverLeaks(t *testing.T) {
	app := respondingApp(service.NewServiceUnavailable("store document metadata"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Error.Message, "store document metadata")
}

func TestRespondError_UnclassifiedError(t *testing.T) {
	app := respondingApp(errors.New("something the services never produce"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
}

func TestRespondError_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("consume download link: %w", service.NewDocumentNotFound(7))
	app := respondingApp(wrapped)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
