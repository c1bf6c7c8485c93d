package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-backend/internal/testutil"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	app.Get("/ws/:gameId", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendString("upgrade allowed")
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"header", "/whoami", "alice", fiber.StatusOK, "alice"},
		{"query", "/whoami?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins", "/whoami?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"blank", "/whoami?playerId=%20", "", fiber.StatusUnauthorized, ""},
		{"missing", "/whoami", "", fiber.StatusUnauthorized, ""},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			resp, err := app.Test(req, -1)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, resp.StatusCode, tt.status)
			if tt.body != "" {
				data, err := io.ReadAll(resp.Body)
				testutil.AssertNoError(t, err)
				testutil.AssertEqual(t, string(data), tt.body)
			}
		})
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/ws/g1", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)

	req = httptest.NewRequest(http.MethodGet, "/ws/g1", nil)
	req.Header.Set("X-Player-ID", "alice")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err = app.Test(req, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
}
