package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/0xRadioAc7iv/go-kfdopt/core"
)

func TestManifestWriteRoundTrip(t *testing.T) {
	m := &core.Manifest{
		ParentDir:  "ckpts",
		Endianness: "little",
		Shared: []core.SharedFile{
			{ID: 0, Original: "/data/model.bin", NewPath: "../model.bin.0"},
		},
		Records: []core.RecordOutcome{
			{
				RecordFile: "ckpts/ckpt_A/file/kfd/0",
				Mode:       "read-only",
				Original:   "/data/model.bin",
				NewPath:    "../model.bin.0",
			},
		},
	}

	file := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, m.Write(file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var loaded core.Manifest
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, *m, loaded)
}
