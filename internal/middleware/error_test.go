package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizflow/internal/domain"
	"quizflow/internal/dto"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.NewInvalidInputError("bad request"), http.StatusBadRequest, "INVALID_INPUT"},
		{"not found", domain.NewError(domain.ErrNotFound, "missing", nil), http.StatusNotFound, "NOT_FOUND"},
		{"completion unavailable", domain.NewCompletionUnavailableError(errors.New("boom")), http.StatusServiceUnavailable, "COMPLETION_UNAVAILABLE"},
		{"archive unavailable", domain.NewArchiveUnavailableError(nil), http.StatusServiceUnavailable, "ARCHIVE_UNAVAILABLE"},
		{"missing credential", domain.NewMissingCredentialError(), http.StatusInternalServerError, "MISSING_CREDENTIAL"},
		{"internal", domain.NewInternalError("oops", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown error", errors.New("plain failure"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Get("/fail", func(c *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var envelope dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

func TestErrorHandler_DoesNotLeakWrappedDetail(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return domain.NewCompletionUnavailableError(errors.New("secret internal detail"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret internal detail")
}
