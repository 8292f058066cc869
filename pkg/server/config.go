package server

import (
	"net/http"
	"time"
)

// Config holds server configuration. Zero-valued fields fall back to
// the defaults from DefaultConfig.
type Config struct {
	// Address to listen on, e.g. ":3000".
	Address string

	// FrameInterval is the commit frame length for sessions. Updates
	// arriving inside one interval coalesce into a single patch batch.
	FrameInterval time.Duration

	// WebSocket buffer sizes.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the WebSocket origin header. The default
	// accepts same-origin requests only.
	CheckOrigin func(*http.Request) bool

	// MaxMessageSize caps incoming WebSocket messages in bytes.
	MaxMessageSize int64

	// HandshakeTimeout bounds the wait for the client hello.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds each outgoing WebSocket write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings idle connections.
	PingInterval time.Duration

	// MaxSessions caps concurrent live sessions. Zero means no cap.
	MaxSessions int

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// HTTP server timeouts.
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		FrameInterval:     time.Second / 60,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    1 << 20,
		HandshakeTimeout:  10 * time.Second,
		WriteTimeout:      10 * time.Second,
		PingInterval:      30 * time.Second,
		ShutdownTimeout:   15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func fillDefaults(config *Config) *Config {
	if config == nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.Address == "" {
		config.Address = defaults.Address
	}
	if config.FrameInterval == 0 {
		config.FrameInterval = defaults.FrameInterval
	}
	if config.ReadBufferSize == 0 {
		config.ReadBufferSize = defaults.ReadBufferSize
	}
	if config.WriteBufferSize == 0 {
		config.WriteBufferSize = defaults.WriteBufferSize
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}
	if config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = defaults.HandshakeTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.PingInterval == 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.ReadHeaderTimeout == 0 {
		config.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if config.IdleTimeout == 0 {
		config.IdleTimeout = defaults.IdleTimeout
	}
	return config
}
