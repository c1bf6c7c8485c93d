package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chess-backend/internal/testutil"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestNewConfigIsValid(t *testing.T) {
	cfg := NewConfig()
	testutil.AssertNoError(t, cfg.Validate())
	testutil.AssertEqual(t, cfg.Origins(), "http://localhost:5173")
}

func TestApplyEnv(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ApplyEnv(env(map[string]string{
		"CHESS_LISTEN_ADDR":     "127.0.0.1:8080",
		"CHESS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
		"CHESS_LOG_LEVEL":       "DEBUG",
		"CHESS_WS_READ_BUFFER":  "4096",
		"CHESS_SESSION_TTL":     "30m",
	}))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.ListenAddr, "127.0.0.1:8080")
	testutil.AssertEqual(t, cfg.AllowedOrigins, []string{"http://a.test", "http://b.test"})
	testutil.AssertEqual(t, cfg.ReadBufferSize, 4096)
	testutil.AssertEqual(t, cfg.WriteBufferSize, 1024)
	testutil.AssertEqual(t, cfg.SessionTTL, 30*time.Minute)

	level, err := cfg.Level()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, level, log.LevelDebug)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad buffer", map[string]string{"CHESS_WS_WRITE_BUFFER": "lots"}},
		{"negative buffer", map[string]string{"CHESS_WS_READ_BUFFER": "-1"}},
		{"bad duration", map[string]string{"CHESS_SWEEP_INTERVAL": "often"}},
		{"unknown level", map[string]string{"CHESS_LOG_LEVEL": "chatty"}},
		{"empty address", map[string]string{"CHESS_LISTEN_ADDR": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig().ApplyEnv(env(tt.vars))
			testutil.AssertErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
