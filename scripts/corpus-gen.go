/*
	Basic script that generates a synthetic checkpoint corpus to test kfdopt against.

	Creates a handful of source files plus N checkpoints whose kfd dumps
	reference them: every checkpoint shares the same read-only sources
	(so consolidation should copy each of them exactly once) and gets
	one private write-only and one private read-write descriptor.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
)

const (
	corpusDir  = "testcorpus"
	sourcesDir = "testsources"

	checkpoints     = 4
	sharedSources   = 3
	sourceSizeBytes = 4096
)

func main() {
	fmt.Println("Generating synthetic checkpoint corpus")

	sources, err := makeSources()
	if err != nil {
		fmt.Println("error creating sources:", err)
		os.Exit(1)
	}

	parentDir := filepath.Join(corpusDir, "ckpts")

	for i := 0; i < checkpoints; i++ {
		if err := makeCheckpoint(parentDir, fmt.Sprintf("ckpt_%d", i), sources); err != nil {
			fmt.Println("error creating checkpoint:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Done. Run: kfdopt %s\n", parentDir)
}

func makeSources() ([]string, error) {
	if err := os.MkdirAll(sourcesDir, 0755); err != nil {
		return nil, err
	}

	sources := make([]string, 0, sharedSources)

	for i := 0; i < sharedSources; i++ {
		data := make([]byte, sourceSizeBytes)
		rand.Read(data)

		file := filepath.Join(sourcesDir, fmt.Sprintf("shared_%d.bin", i))
		if err := os.WriteFile(file, data, 0644); err != nil {
			return nil, err
		}

		// kfd dumps only carry absolute paths worth consolidating.
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, abs)
	}

	return sources, nil
}

func makeCheckpoint(parentDir, name string, sources []string) error {
	kfdDir := filepath.Join(parentDir, name, "file", "kfd")
	if err := os.MkdirAll(kfdDir, 0755); err != nil {
		return err
	}

	// platinfo: "pi" magic + little-endian flag
	platinfoFile := filepath.Join(parentDir, name, "platinfo")
	if err := os.WriteFile(platinfoFile, []byte{'p', 'i', 0x00}, 0644); err != nil {
		return err
	}

	n := 0
	writeDump := func(flags uint32, path string) error {
		rec := &record.KfdRecord{
			SourceFile: filepath.Join(kfdDir, fmt.Sprintf("%d", n)),
			ByteOrder:  binary.LittleEndian,
			Offset:     uint64(rand.Intn(sourceSizeBytes)),
			Flags:      flags,
			Path:       path,
		}
		n++

		data, err := record.EncodeKfdRecordToBytes(rec)
		if err != nil {
			return err
		}
		return os.WriteFile(rec.SourceFile, data, 0644)
	}

	for _, src := range sources {
		if err := writeDump(record.O_RDONLY, src); err != nil {
			return err
		}
	}
	if err := writeDump(record.O_WRONLY, sources[0]+".out"); err != nil {
		return err
	}
	if err := writeDump(record.O_RDWR, sources[0]); err != nil {
		return err
	}

	return nil
}
