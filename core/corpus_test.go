package core_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
)

const (
	littleEndianFlag byte = 0x00
	bigEndianFlag    byte = 0x01
)

// newCheckpoint creates an empty checkpoint directory with a platinfo
// header and the fixed file/kfd layout, returning its root.
func newCheckpoint(t *testing.T, parentDir, name string, endianFlag byte) string {
	t.Helper()

	checkpointDir := filepath.Join(parentDir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(checkpointDir, "file", "kfd"), 0755))

	platinfoFile := filepath.Join(checkpointDir, "platinfo")
	require.NoError(t, os.WriteFile(platinfoFile, []byte{'p', 'i', endianFlag}, 0644))

	return checkpointDir
}

// writeKfdDump writes one kfd record file into a checkpoint and
// returns its path.
func writeKfdDump(t *testing.T, checkpointDir, name string, offset uint64, flags uint32, path string) string {
	t.Helper()

	file := filepath.Join(checkpointDir, "file", "kfd", name)
	rec := &record.KfdRecord{
		SourceFile: file,
		ByteOrder:  binary.LittleEndian,
		Offset:     offset,
		Flags:      flags,
		Path:       path,
	}

	data, err := record.EncodeKfdRecordToBytes(rec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0644))

	return file
}

// writeSource creates a source file with the given content and returns
// its absolute path, suitable for use as a kfd record path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	abs, err := filepath.Abs(file)
	require.NoError(t, err)

	return abs
}

// reloadDump decodes a kfd record file as little-endian.
func reloadDump(t *testing.T, file string) *record.KfdRecord {
	t.Helper()

	rec, err := record.LoadKfdRecord(file, binary.LittleEndian)
	require.NoError(t, err)

	return rec
}
