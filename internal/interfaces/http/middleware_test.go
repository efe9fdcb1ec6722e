package http

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_RegistraOperador(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{Immutable: true, ErrorHandler: ErrorHandler})
	app.Use(RequestLogger(zerolog.New(&buf)))
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals(LocalSubject, "operador-7")
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, buf.String(), `"subject":"operador-7"`)
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestRequestLogger_SinAutenticacionOmiteOperador(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{Immutable: true, ErrorHandler: ErrorHandler})
	app.Use(RequestLogger(zerolog.New(&buf)))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotContains(t, buf.String(), "subject")
}
