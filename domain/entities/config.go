package entities

import (
	"time"
)

// Settings controls transport limits and logging for one invocation.
type Settings struct {
	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level" koanf:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// UserAgent is sent with every request when non-empty.
	UserAgent string `json:"user_agent,omitempty" koanf:"user_agent"`

	// Timeout bounds the whole request including reading the body.
	Timeout time.Duration `json:"timeout" koanf:"timeout" validate:"gt=0"`

	// ConnectTimeout bounds establishing the TCP connection.
	ConnectTimeout time.Duration `json:"connect_timeout" koanf:"connect_timeout" validate:"gt=0"`

	// MaxRedirects is the number of redirects followed. 0 disables following.
	MaxRedirects int `json:"max_redirects" koanf:"max_redirects" validate:"gte=0"`

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `json:"max_body_bytes" koanf:"max_body_bytes" validate:"gt=0"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:       "warn",
		Timeout:        30 * time.Second,
		ConnectTimeout: 10 * time.Second,
		MaxRedirects:   10,
		MaxBodyBytes:   10 * 1024 * 1024, // 10MB
	}
}

// SettingsOption is a functional option for adjusting Settings.
type SettingsOption func(*Settings)

// WithTimeout sets the overall request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) SettingsOption {
	return func(s *Settings) {
		if d > 0 {
			s.Timeout = d
		}
	}
}

// WithConnectTimeout sets the dial timeout. Non-positive values are ignored.
func WithConnectTimeout(d time.Duration) SettingsOption {
	return func(s *Settings) {
		if d > 0 {
			s.ConnectTimeout = d
		}
	}
}

// WithMaxRedirects sets the redirect limit. Negative values are ignored.
func WithMaxRedirects(n int) SettingsOption {
	return func(s *Settings) {
		if n >= 0 {
			s.MaxRedirects = n
		}
	}
}

// WithLogLevel sets the logging verbosity level.
func WithLogLevel(level string) SettingsOption {
	return func(s *Settings) {
		s.LogLevel = level
	}
}

// NewSettings creates Settings from the defaults and the given options.
func NewSettings(opts ...SettingsOption) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
