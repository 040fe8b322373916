package kfdopt

import (
	"github.com/0xRadioAc7iv/go-kfdopt/core"
	"github.com/0xRadioAc7iv/go-kfdopt/internal"
)

// Result re-exports the engine's run report.
type Result = core.Result

// Consolidate runs one full consolidation pass over the checkpoint
// corpus rooted at parentDir. When a manifest path is configured, the
// YAML report is written after the pass succeeds.
func Consolidate(parentDir string, opts ...Option) (*Result, error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	c := &core.Consolidator{
		ParentDir: parentDir,
		Logger:    cfg.Logger,
	}

	result, err := c.Run()
	if err != nil {
		return nil, err
	}

	if cfg.ManifestPath != "" {
		if err := result.Manifest.Write(cfg.ManifestPath); err != nil {
			return nil, err
		}
	}

	return result, nil
}
