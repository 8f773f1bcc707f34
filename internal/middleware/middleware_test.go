package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	return app
}

func readError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err        *domain.DomainError
		wantStatus int
	}{
		{domain.NewValidationError("bad url"), http.StatusBadRequest},
		{domain.NewFetchError("Failed to fetch page: HTTP 500", nil), http.StatusBadRequest},
		{domain.NewInvalidInputError("bad body"), http.StatusBadRequest},
		{domain.NewNotFoundError("Quiz not found"), http.StatusNotFound},
		{domain.NewLLMError("All candidate models failed:\nm: x"), http.StatusBadGateway},
		{domain.NewInternalError("Failed to store quiz", errors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := readError(t, resp)
			assert.Equal(t, string(tt.err.Code), body.Code)
			assert.Equal(t, tt.err.Message, body.Message)
			assert.Equal(t, tt.err.Message, body.Detail)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.Join(errors.New("outer"), domain.NewNotFoundError("Quiz not found"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := readError(t, resp)
	assert.Equal(t, "HTTP_ERROR", body.Code)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("secret connection string leaked") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := readError(t, resp)
	assert.Equal(t, string(domain.CodeInternal), body.Code)
	assert.Equal(t, "Internal server error", body.Detail)
}

func TestRequestLogger_RequestID(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDKey).(string))
	})

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		id := resp.Header.Get(RequestIDHeader)
		assert.Len(t, id, 26)
		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, id, string(raw))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "upstream-id", resp.Header.Get(RequestIDHeader))
	})
}

func TestValidateURLBody(t *testing.T) {
	app := newTestApp()
	app.Post("/", NewValidationMiddleware().ValidateURLBody(), func(c *fiber.Ctx) error {
		req, ok := ValidatedURL(c)
		if !ok {
			return errors.New("no validated request")
		}
		return c.SendString(req.URL)
	})

	post := func(body, contentType string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("valid", func(t *testing.T) {
		resp := post(`{"url":"https://en.wikipedia.org/wiki/Go"}`, fiber.MIMEApplicationJSON)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Go", string(raw))
	})

	rejected := map[string]struct {
		body        string
		contentType string
	}{
		"empty body":   {"", fiber.MIMEApplicationJSON},
		"invalid json": {`{"url"`, fiber.MIMEApplicationJSON},
		"missing url":  {`{}`, fiber.MIMEApplicationJSON},
		"blank url":    {`{"url":"  "}`, fiber.MIMEApplicationJSON},
		"not json":     {`url=x`, "text/plain"},
	}
	for name, tc := range rejected {
		t.Run(name, func(t *testing.T) {
			resp := post(tc.body, tc.contentType)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, string(domain.CodeInvalidInput), readError(t, resp).Code)
		})
	}
}
