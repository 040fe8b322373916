package core

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-kfdopt/internal/lock"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/platinfo"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/utils"
)

// UnknownAccessModeError reports a kfd record whose flags carry the
// invalid fourth access-mode bit pattern (low bits 0b11).
type UnknownAccessModeError struct {
	File string
}

func (e *UnknownAccessModeError) Error() string {
	return fmt.Sprintf("unknown kfd access mode in %q", e.File)
}

// Stats summarizes what one consolidation run did.
type Stats struct {
	Records       int // Absolute-path records processed
	SharedCopies  int // Distinct read-only sources physically copied
	SharedReused  int // Read-only records that reused an existing copy
	PrivateCopies int // Read-write sources copied per checkpoint
	Placeholders  int // Empty files created for write-only records
}

// Result is what a completed run reports back to the caller.
type Result struct {
	Stats    Stats
	Manifest Manifest
}

// Consolidator rewrites a checkpoint corpus so that the absolute
// source paths its kfd dumps reference are replaced by relative paths
// into the corpus itself.
//
// Read-only sources are copied once into the parent directory and
// shared by every checkpoint referencing the same original path.
// Writable sources get a private copy (read-write) or an empty
// placeholder (write-only) inside their own checkpoint. After the
// whole corpus has been classified, every mutated record is persisted
// back to its backing file in place.
type Consolidator struct {
	ParentDir string
	Logger    *slog.Logger
}

// Run performs one full consolidation pass over the corpus.
//
// Any error aborts the run immediately; files already copied and
// records already persisted are left as they are. The corpus directory
// is held under an exclusive lock for the duration of the run.
func (c *Consolidator) Run() (*Result, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	lockFile, err := lock.LockDirectory(c.ParentDir)
	if err != nil {
		return nil, err
	}
	defer lock.UnlockDirectory(lockFile)

	var pi platinfo.PlatInfo
	table := make(DedupTable)
	kfds := []*record.KfdRecord{}
	result := &Result{}

	err = CollectKfdRecords(c.ParentDir, &pi, func(kfd *record.KfdRecord) error {
		original := kfd.Path

		switch {
		case kfd.ReadOnly():
			id, seen := table.Identity(kfd.Path)
			newPath := fmt.Sprintf("../%s.%d", path.Base(kfd.Path), id)
			if !seen {
				if err := utils.CopyFile(kfd.Path, NativePath(kfd, newPath)); err != nil {
					return err
				}
				table.Remember(kfd.Path, id)
				result.Stats.SharedCopies++
				result.Manifest.Shared = append(result.Manifest.Shared, SharedFile{
					ID:       id,
					Original: kfd.Path,
					NewPath:  newPath,
				})
				logger.Info("copied shared source", "path", kfd.Path, "id", id)
			} else {
				result.Stats.SharedReused++
				logger.Debug("reusing shared copy", "path", kfd.Path, "id", id)
			}
			kfd.Path = newPath

		case kfd.WriteOnly(), kfd.ReadWrite():
			newPath := fmt.Sprintf("%s/%s/%s.%s",
				FileDirName, KfdDirName, path.Base(kfd.Path), filepath.Base(kfd.SourceFile))
			nativePath := NativePath(kfd, newPath)
			if kfd.WriteOnly() {
				if err := utils.CreateEmptyFile(nativePath); err != nil {
					return err
				}
				result.Stats.Placeholders++
				logger.Debug("created write-only placeholder", "record", kfd.SourceFile)
			} else {
				if err := utils.CopyFile(kfd.Path, nativePath); err != nil {
					return err
				}
				result.Stats.PrivateCopies++
				logger.Debug("copied private source", "path", kfd.Path, "record", kfd.SourceFile)
			}
			kfd.Path = newPath

		default:
			return &UnknownAccessModeError{File: kfd.SourceFile}
		}

		result.Manifest.Records = append(result.Manifest.Records, RecordOutcome{
			RecordFile: kfd.SourceFile,
			Mode:       kfd.AccessModeName(),
			Original:   original,
			NewPath:    kfd.Path,
		})
		kfds = append(kfds, kfd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// All rewriting decisions are settled for the whole corpus before
	// the first record hits the disk.
	for _, kfd := range kfds {
		if err := kfd.Persist(); err != nil {
			return nil, err
		}
	}

	result.Stats.Records = len(kfds)
	result.Manifest.ParentDir = c.ParentDir
	if endian, ok := pi.Endian(); ok {
		result.Manifest.Endianness = endian.String()
	}

	logger.Info("consolidation finished",
		"records", result.Stats.Records,
		"shared_copies", result.Stats.SharedCopies,
		"private_copies", result.Stats.PrivateCopies,
		"placeholders", result.Stats.Placeholders)

	return result, nil
}
