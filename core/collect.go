package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-kfdopt/internal/platinfo"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
)

// ScanKfdRecords loads every kfd dump of one checkpoint.
//
// Only purely numeric entry names inside <checkpoint>/file/kfd/ are kfd
// dumps; anything else in the directory is bookkeeping and is skipped
// silently rather than rejected.
func ScanKfdRecords(checkpointDir string, pi *platinfo.PlatInfo) ([]*record.KfdRecord, error) {
	kfdDir := filepath.Join(checkpointDir, FileDirName, KfdDirName)

	entries, err := os.ReadDir(kfdDir)
	if err != nil {
		return nil, fmt.Errorf("read kfd directory: %w", err)
	}

	records := []*record.KfdRecord{}

	for _, entry := range entries {
		if entry.IsDir() || !isNumeric(entry.Name()) {
			continue
		}

		rec, err := record.LoadKfdRecord(filepath.Join(kfdDir, entry.Name()), pi.ByteOrder())
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// CollectKfdRecords walks every checkpoint directory under parentDir
// and calls yield once per kfd record whose referenced path is
// absolute. Records with relative paths already point inside the
// checkpoint set and are dropped before the consumer ever sees them.
//
// Every checkpoint's platinfo header is validated against pi before
// the first record is yielded, so a malformed header or an endianness
// conflict anywhere in the corpus aborts the walk before the consumer
// has acted on anything. Any error returned by yield aborts the walk
// too. The walk is a single forward pass and is not restartable.
func CollectKfdRecords(parentDir string, pi *platinfo.PlatInfo, yield func(*record.KfdRecord) error) error {
	entries, err := os.ReadDir(parentDir)
	if err != nil {
		return fmt.Errorf("read parent directory: %w", err)
	}

	checkpointDirs := []string{}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		checkpointDir := filepath.Join(parentDir, entry.Name())

		if err := pi.Check(filepath.Join(checkpointDir, PlatinfoFileName)); err != nil {
			return err
		}

		checkpointDirs = append(checkpointDirs, checkpointDir)
	}

	for _, checkpointDir := range checkpointDirs {
		records, err := ScanKfdRecords(checkpointDir, pi)
		if err != nil {
			return err
		}

		for _, rec := range records {
			if !rec.IsAbsPath() {
				continue
			}
			if err := yield(rec); err != nil {
				return err
			}
		}
	}

	return nil
}

func isNumeric(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
