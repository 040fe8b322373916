package internal

import "log/slog"

type Config struct {
	Logger       *slog.Logger
	ManifestPath string
}

func DefaultConfig() *Config {
	return &Config{
		Logger: slog.Default(),
	}
}
