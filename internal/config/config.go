// Package config holds the session server settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ListenAddr     string
	AllowedOrigins []string
	LogLevel       string

	// websocket buffers, in bytes
	ReadBufferSize  int
	WriteBufferSize int

	// SessionTTL is how long a game may sit without moves or connections
	// before it is dropped.
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		ListenAddr:      ":3000",
		AllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:        "info",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SessionTTL:      2 * time.Hour,
		SweepInterval:   time.Minute,
	}
}

// Load returns the defaults overlaid with CHESS_* environment variables.
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CHESS_LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	if v, ok := lookup("CHESS_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("CHESS_LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}

	ints := map[string]*int{
		"CHESS_WS_READ_BUFFER":  &c.ReadBufferSize,
		"CHESS_WS_WRITE_BUFFER": &c.WriteBufferSize,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"CHESS_SESSION_TTL":    &c.SessionTTL,
		"CHESS_SWEEP_INTERVAL": &c.SweepInterval,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
			*dst = d
		}
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffers must be positive", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("%w: session ttl and sweep interval must be positive", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (log.Level, error) {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
}

// Origins joins AllowedOrigins the way the CORS middleware expects.
func (c *Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ", ")
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
