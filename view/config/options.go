package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(c *Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.API.BaseURL = url
		}
	}
}

func WithSessionFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.SessionFile = path
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}
