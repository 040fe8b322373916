package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecodeRecord(t *testing.T) {
	orders := []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little endian", binary.LittleEndian},
		{"big endian", binary.BigEndian},
	}

	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			original := &KfdRecord{
				SourceFile: "ckpt/file/kfd/0",
				ByteOrder:  tt.order,
				Offset:     0xDEADBEEF,
				Flags:      O_RDONLY,
				Path:       "/data/model.bin",
			}

			encoded, err := EncodeKfdRecordToBytes(original)
			if err != nil {
				t.Fatalf("unexpected encode error: %v", err)
			}

			decoded, err := DecodeKfdRecordFromBytes(encoded, tt.order, original.SourceFile)
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}

			if decoded.Offset != original.Offset {
				t.Errorf("Offset mismatch: got %v, want %v", decoded.Offset, original.Offset)
			}
			if decoded.Flags != original.Flags {
				t.Errorf("Flags mismatch: got %v, want %v", decoded.Flags, original.Flags)
			}
			if decoded.Path != original.Path {
				t.Errorf("Path mismatch: got %q, want %q", decoded.Path, original.Path)
			}
		})
	}
}

func TestRoundTripReproducesBytes(t *testing.T) {
	original := &KfdRecord{
		SourceFile: "ckpt/file/kfd/7",
		ByteOrder:  binary.BigEndian,
		Offset:     42,
		Flags:      O_RDWR,
		Path:       "/var/log/app.log",
	}

	encoded, err := EncodeKfdRecordToBytes(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := DecodeKfdRecordFromBytes(encoded, binary.BigEndian, original.SourceFile)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	reencoded, err := EncodeKfdRecordToBytes(decoded)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}

	if !bytes.Equal(encoded, reencoded) {
		t.Fatalf("round trip changed bytes: got %v, want %v", reencoded, encoded)
	}
}

func TestDecodeErrorsOnTruncatedData(t *testing.T) {
	record := &KfdRecord{
		SourceFile: "ckpt/file/kfd/1",
		ByteOrder:  binary.LittleEndian,
		Offset:     123,
		Flags:      O_WRONLY,
		Path:       "/tmp/out",
	}

	encoded, _ := EncodeKfdRecordToBytes(record)

	for i := 0; i < len(encoded); i++ {
		_, err := DecodeKfdRecordFromBytes(encoded[:i], binary.LittleEndian, record.SourceFile)
		if err == nil {
			t.Fatalf("expected error when decoding truncated data of length %d, got nil", i)
		}

		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected *FormatError for length %d, got %T", i, err)
		}
	}
}

func TestDecodeRejectsNonASCIIPath(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint64(0))
	binary.Write(buf, binary.LittleEndian, uint32(O_RDONLY))
	binary.Write(buf, binary.LittleEndian, uint32(4))
	buf.Write([]byte{'/', 'a', 0xC3, 0xA9}) // "/aé" in UTF-8

	_, err := DecodeKfdRecordFromBytes(buf.Bytes(), binary.LittleEndian, "ckpt/file/kfd/2")

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *FormatError for non-ASCII path, got %v", err)
	}
}

func TestEncodedByteLayout(t *testing.T) {
	r := &KfdRecord{
		SourceFile: "ckpt/file/kfd/0",
		ByteOrder:  binary.LittleEndian,
		Offset:     2,
		Flags:      1,
		Path:       "/x",
	}

	encoded, err := EncodeKfdRecordToBytes(r)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Expected bytes structure:
	// uint64 Offset
	// uint32 Flags
	// uint32 PathLen
	// []byte Path
	if len(encoded) != KfdHeaderSizeBytes+len(r.Path) {
		t.Fatalf("unexpected encoded length: got %d, want %d", len(encoded), KfdHeaderSizeBytes+len(r.Path))
	}

	if got := binary.LittleEndian.Uint64(encoded[0:8]); got != r.Offset {
		t.Fatalf("Offset mismatch: got %v want %v", got, r.Offset)
	}
	if got := binary.LittleEndian.Uint32(encoded[8:12]); got != r.Flags {
		t.Fatalf("Flags mismatch: got %v want %v", got, r.Flags)
	}
	if got := binary.LittleEndian.Uint32(encoded[12:16]); got != uint32(len(r.Path)) {
		t.Fatalf("PathLen mismatch: got %v want %v", got, len(r.Path))
	}
	if string(encoded[16:]) != r.Path {
		t.Fatalf("Path bytes mismatch: got %q want %q", encoded[16:], r.Path)
	}
}

func TestAccessModeClassification(t *testing.T) {
	tests := []struct {
		name      string
		flags     uint32
		readOnly  bool
		writeOnly bool
		readWrite bool
		modeName  string
	}{
		{"read only", O_RDONLY, true, false, false, "read-only"},
		{"write only", O_WRONLY, false, true, false, "write-only"},
		{"read write", O_RDWR, false, false, true, "read-write"},
		{"invalid fourth combination", 0x3, false, false, false, "unknown"},
		{"high bits ignored", O_WRONLY | 0o100, false, true, false, "write-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &KfdRecord{Flags: tt.flags}

			if r.ReadOnly() != tt.readOnly {
				t.Errorf("ReadOnly: got %v, want %v", r.ReadOnly(), tt.readOnly)
			}
			if r.WriteOnly() != tt.writeOnly {
				t.Errorf("WriteOnly: got %v, want %v", r.WriteOnly(), tt.writeOnly)
			}
			if r.ReadWrite() != tt.readWrite {
				t.Errorf("ReadWrite: got %v, want %v", r.ReadWrite(), tt.readWrite)
			}
			if r.AccessModeName() != tt.modeName {
				t.Errorf("AccessModeName: got %q, want %q", r.AccessModeName(), tt.modeName)
			}
		})
	}
}

func TestIsAbsPath(t *testing.T) {
	if !(&KfdRecord{Path: "/etc/hosts"}).IsAbsPath() {
		t.Error("expected /etc/hosts to be absolute")
	}
	if (&KfdRecord{Path: "../hosts.0"}).IsAbsPath() {
		t.Error("expected ../hosts.0 to be relative")
	}
	if (&KfdRecord{Path: ""}).IsAbsPath() {
		t.Error("expected empty path to be relative")
	}
}

func TestLoadAndPersist(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "5")

	original := &KfdRecord{
		SourceFile: file,
		ByteOrder:  binary.LittleEndian,
		Offset:     99,
		Flags:      O_RDONLY,
		Path:       "/data/model.bin",
	}

	if err := original.Persist(); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	loaded, err := LoadKfdRecord(file, binary.LittleEndian)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Path != original.Path || loaded.Offset != original.Offset || loaded.Flags != original.Flags {
		t.Fatalf("loaded record differs: got %+v, want %+v", loaded, original)
	}

	// Mutate and persist again, like the consolidation pass does.
	loaded.Path = "../model.bin.0"
	if err := loaded.Persist(); err != nil {
		t.Fatalf("persist after mutation failed: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := DecodeKfdRecordFromBytes(data, binary.LittleEndian, file)
	if err != nil {
		t.Fatalf("decode after mutation failed: %v", err)
	}
	if reloaded.Path != "../model.bin.0" {
		t.Fatalf("unexpected path after rewrite: %q", reloaded.Path)
	}
}
