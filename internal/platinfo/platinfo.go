package platinfo

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Endianness is the numeric byte order declared by a checkpoint's
// platinfo file.
type Endianness byte

const (
	LittleEndian Endianness = iota
	BigEndian
)

// Magic bytes at the start of every platinfo file.
const Magic = "pi"

// Magic (2) + endianness flag (1)
const HeaderSizeBytes = 3

// FormatError reports a platinfo file whose header is malformed.
type FormatError struct {
	File string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%q is not a valid platinfo file", e.File)
}

// MismatchError reports a checkpoint whose declared byte order differs
// from the one adopted earlier in the same run.
type MismatchError struct {
	File string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("endianness mismatch in %q", e.File)
}

// PlatInfo holds the byte order shared by every checkpoint in one run.
//
// The value starts unset. The first successful Check adopts the byte
// order it read; every later Check only compares against the adopted
// value and never mutates it again.
type PlatInfo struct {
	endian Endianness
	set    bool
}

// Check reads the platinfo header of one checkpoint and validates it
// against the state adopted so far.
//
// The flag byte 0x00 means little-endian; any other value is treated
// as big-endian. Returns a *FormatError on a bad magic or a truncated
// header, and a *MismatchError when the declared byte order conflicts
// with a previously adopted one.
func (p *PlatInfo) Check(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open platinfo: %w", err)
	}
	defer f.Close()

	header := make([]byte, HeaderSizeBytes)
	if _, err := io.ReadFull(f, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return &FormatError{File: file}
		}
		return fmt.Errorf("read platinfo: %w", err)
	}

	if string(header[:2]) != Magic {
		return &FormatError{File: file}
	}

	endian := BigEndian
	if header[2] == 0x00 {
		endian = LittleEndian
	}

	if !p.set {
		p.endian = endian
		p.set = true
		return nil
	}

	if p.endian != endian {
		return &MismatchError{File: file}
	}

	return nil
}

// ByteOrder returns the adopted byte order for decoding kfd records.
// Only valid after at least one successful Check.
func (p *PlatInfo) ByteOrder() binary.ByteOrder {
	if p.endian == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Endian reports the adopted endianness and whether one has been
// adopted yet.
func (p *PlatInfo) Endian() (Endianness, bool) {
	return p.endian, p.set
}

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}
