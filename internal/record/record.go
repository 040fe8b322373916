package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Access-mode bits in the low two bits of Flags, matching the open(2)
// flag encoding of the checkpointed process.
const (
	O_ACCMODE uint32 = 0x3
	O_RDONLY  uint32 = 0x0
	O_WRONLY  uint32 = 0x1
	O_RDWR    uint32 = 0x2
)

// Offset (8) + Flags (4) + PathLen (4)
const KfdHeaderSizeBytes = 16

// KfdRecord is one kfd dump: the snapshot of a single open file
// descriptor taken at checkpoint time.
//
// SourceFile is the on-disk record file the value was loaded from and
// will be persisted back to. Offset is carried through unchanged; Path
// starts as the path the descriptor referred to and is rewritten by
// the consolidation pass.
type KfdRecord struct {
	SourceFile string           // Backing record file (file/kfd/<n>)
	ByteOrder  binary.ByteOrder // Byte order of the owning checkpoint
	Offset     uint64           // File offset at checkpoint time
	Flags      uint32           // Open flags bitmask
	Path       string           // Referenced path (ASCII)
}

// FormatError reports a kfd record file whose contents do not match
// the fixed wire layout.
type FormatError struct {
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid kfd record %q: %s", e.File, e.Reason)
}

// DecodeKfdRecordFromBytes parses one kfd record from its wire form:
//
//	<offset:uint64><flags:uint32><path_len:uint32><path bytes>
//
// Numeric fields use the given byte order. The path is path_len raw
// ASCII bytes with no terminator and no padding.
func DecodeKfdRecordFromBytes(data []byte, order binary.ByteOrder, sourceFile string) (*KfdRecord, error) {
	var offset uint64
	var flags uint32
	var pathLen uint32

	buf := bytes.NewReader(data)

	if err := binary.Read(buf, order, &offset); err != nil {
		return nil, &FormatError{File: sourceFile, Reason: "truncated header"}
	}
	if err := binary.Read(buf, order, &flags); err != nil {
		return nil, &FormatError{File: sourceFile, Reason: "truncated header"}
	}
	if err := binary.Read(buf, order, &pathLen); err != nil {
		return nil, &FormatError{File: sourceFile, Reason: "truncated header"}
	}

	// Checked against the remaining bytes before allocating, so a
	// corrupt length field cannot trigger a giant allocation.
	if int(pathLen) > buf.Len() {
		return nil, &FormatError{File: sourceFile, Reason: "truncated path"}
	}

	path := make([]byte, pathLen)
	if _, err := io.ReadFull(buf, path); err != nil {
		return nil, &FormatError{File: sourceFile, Reason: "truncated path"}
	}

	for _, b := range path {
		if b > 0x7f {
			return nil, &FormatError{File: sourceFile, Reason: "path is not ASCII"}
		}
	}

	return &KfdRecord{
		SourceFile: sourceFile,
		ByteOrder:  order,
		Offset:     offset,
		Flags:      flags,
		Path:       string(path),
	}, nil
}

// EncodeKfdRecordToBytes serializes a kfd record back into its wire
// form. Encoding a freshly decoded record reproduces the original
// bytes exactly as long as Path was not mutated.
func EncodeKfdRecordToBytes(r *KfdRecord) ([]byte, error) {
	buf := &bytes.Buffer{}

	if err := binary.Write(buf, r.ByteOrder, r.Offset); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, r.ByteOrder, r.Flags); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, r.ByteOrder, uint32(len(r.Path))); err != nil {
		return nil, err
	}
	if _, err := buf.WriteString(r.Path); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// LoadKfdRecord reads and decodes the record stored in file.
func LoadKfdRecord(file string, order binary.ByteOrder) (*KfdRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read kfd record: %w", err)
	}
	return DecodeKfdRecordFromBytes(data, order, file)
}

// Persist overwrites the record's backing file with its current wire
// form. Called exactly once per mutated record, after the whole
// consolidation pass has classified every record.
func (r *KfdRecord) Persist() error {
	data, err := EncodeKfdRecordToBytes(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.SourceFile, data, 0644); err != nil {
		return fmt.Errorf("persist kfd record: %w", err)
	}
	return nil
}

// ReadOnly reports whether the descriptor was opened read-only.
func (r *KfdRecord) ReadOnly() bool {
	return r.Flags&O_ACCMODE == O_RDONLY
}

// WriteOnly reports whether the descriptor was opened write-only.
func (r *KfdRecord) WriteOnly() bool {
	return r.Flags&O_ACCMODE == O_WRONLY
}

// ReadWrite reports whether the descriptor was opened read-write.
func (r *KfdRecord) ReadWrite() bool {
	return r.Flags&O_ACCMODE == O_RDWR
}

// IsAbsPath reports whether the referenced path is absolute. Paths in
// kfd records always use '/' separators regardless of the host OS.
func (r *KfdRecord) IsAbsPath() bool {
	return len(r.Path) > 0 && r.Path[0] == '/'
}

// AccessModeName returns a human-readable name for the record's access
// mode.
func (r *KfdRecord) AccessModeName() string {
	switch r.Flags & O_ACCMODE {
	case O_RDONLY:
		return "read-only"
	case O_WRONLY:
		return "write-only"
	case O_RDWR:
		return "read-write"
	default:
		return "unknown"
	}
}
