package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the global Logger for one writing JSON into a buffer and
// restores it when the test finishes. Tests using it must not run in parallel.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(&ctxHandler{slog.NewJSONHandler(&buf, nil)})
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestStructuredLoggerSkipsProbeEndpoints(t *testing.T) {
	buf := captureLogs(t)

	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/health/live", func(c *fiber.Ctx) error { return c.SendString("up") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("") })
	app.Get("/api/posts/", func(c *fiber.Ctx) error { return c.SendString("[]") })

	for _, path := range []string{"/health/live", "/metrics", "/api/posts/"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	lines := logLines(t, buf)
	require.Len(t, lines, 1, "probe and scrape endpoints stay out of the log")
	assert.Equal(t, "/api/posts/", lines[0]["path"])
	assert.Equal(t, "request processed", lines[0]["msg"])
}

func TestStructuredLoggerFields(t *testing.T) {
	buf := captureLogs(t)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/api/leaderboard/", func(c *fiber.Ctx) error {
		return c.SendString(`{"leaderboard":[]}`)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/leaderboard/", nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	line := lines[0]

	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, "GET", line["method"])
	assert.EqualValues(t, len(`{"leaderboard":[]}`), line["bytes"])
	assert.NotEmpty(t, line["request_id"], "context handler attaches the request id")
}
