package core

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
)

// NativePath maps a relative path stored in a kfd record to the host
// filesystem path it denotes. Relative paths are resolved from the
// checkpoint root, which sits exactly three segments above the record
// file (<root>/file/kfd/<n>).
//
// The scanner only ever produces records from inside a file/kfd
// directory, so a record file that violates that layout can only come
// from a bug in the caller. The precondition is therefore enforced
// with a panic, not an error return.
func NativePath(rec *record.KfdRecord, rel string) string {
	parts := strings.Split(filepath.ToSlash(rec.SourceFile), "/")

	if len(parts) < 3 || parts[len(parts)-3] != FileDirName || parts[len(parts)-2] != KfdDirName {
		panic(fmt.Sprintf("kfd record %q is not under a file/kfd directory", rec.SourceFile))
	}

	root := strings.Join(parts[:len(parts)-3], "/")
	if root == "" {
		// Record file sits directly under file/kfd in the working
		// directory, or under the filesystem root.
		if strings.HasPrefix(rec.SourceFile, "/") {
			root = "/"
		} else {
			root = "."
		}
	}

	return filepath.FromSlash(path.Join(root, rel))
}
