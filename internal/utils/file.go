package utils

import (
	"fmt"
	"io"
	"os"
)

// Indicates if the given path exists or not (works for both files and directories)
func PathExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return err == nil
}

// CopyFile copies the contents of src to dst, creating or truncating
// dst. Symlinks are followed: os.Open resolves src, so the copy always
// contains the target's content, never a link.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination %q: %w", dst, err)
	}

	return nil
}

// CreateEmptyFile creates (or truncates) an empty regular file at path.
func CreateEmptyFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	return f.Close()
}
