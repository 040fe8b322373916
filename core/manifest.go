package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML report of one consolidation run: which shared
// copies were made and how every record was rewritten. It is purely
// informational; kfdopt never reads it back.
type Manifest struct {
	ParentDir  string          `yaml:"parent_dir"`
	Endianness string          `yaml:"endianness,omitempty"`
	Shared     []SharedFile    `yaml:"shared_files"`
	Records    []RecordOutcome `yaml:"records"`
}

// SharedFile describes one deduplicated read-only source copy.
type SharedFile struct {
	ID       int    `yaml:"id"`
	Original string `yaml:"original_path"`
	NewPath  string `yaml:"new_path"`
}

// RecordOutcome describes how one kfd record was rewritten.
type RecordOutcome struct {
	RecordFile string `yaml:"record_file"`
	Mode       string `yaml:"mode"`
	Original   string `yaml:"original_path"`
	NewPath    string `yaml:"new_path"`
}

// Write serializes the manifest to path as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
