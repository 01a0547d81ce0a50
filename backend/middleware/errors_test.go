package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"learnhub/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(production bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(production, utils.NopLogger())})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return utils.Internal("Could not load courses", pkgerrors.Wrap(errors.New("connection refused"), "load catalog"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("leaky driver detail")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return utils.BadRequest("Please provide title.")
	})
	app.Use(NotFound)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, utils.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	return resp.StatusCode, body
}

func TestErrorHandlerDevelopment(t *testing.T) {
	app := errorApp(false)

	status, body := get(t, app, "/internal")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Could not load courses", body.Message)
	assert.Contains(t, body.Stack, "connection refused")

	status, body = get(t, app, "/plain")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Server Error", body.Message)

	status, body = get(t, app, "/bad")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Please provide title.", body.Message)
	assert.Empty(t, body.Stack)

	status, body = get(t, app, "/missing?x=1")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Not Found - /missing?x=1", body.Message)
}

func TestErrorHandlerProductionHidesStack(t *testing.T) {
	status, body := get(t, errorApp(true), "/internal")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Could not load courses", body.Message)
	assert.Empty(t, body.Stack)
}
