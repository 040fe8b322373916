package kfdopt

import (
	"log/slog"

	"github.com/0xRadioAc7iv/go-kfdopt/internal"
)

type Option func(*internal.Config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

func WithManifest(path string) Option {
	return func(c *internal.Config) {
		c.ManifestPath = path
	}
}
