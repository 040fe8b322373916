package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xRadioAc7iv/go-kfdopt/core"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/platinfo"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/record"
	"github.com/0xRadioAc7iv/go-kfdopt/internal/utils"
)

const inspectHelp = `Commands:
  checkpoints              list the checkpoint directories of the corpus
  records <checkpoint>     list the kfd dumps of one checkpoint
  show <checkpoint> <n>    show the fields of one kfd dump
  help                     show this help
  exit                     quit`

// runInspect is a read-only REPL over a checkpoint corpus. It never
// mutates records, so it can be pointed at a live corpus safely.
func runInspect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	parentDir := args[0]

	fmt.Printf("Inspecting %s\n", parentDir)
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF on a pipe or Ctrl+D at the prompt.
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		if line == "exit" {
			return nil
		}

		name, cmdArgs, err := utils.SplitCommandLine(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}

		if err := runInspectCommand(parentDir, name, cmdArgs); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func runInspectCommand(parentDir, name string, args []string) error {
	switch name {
	case "help":
		fmt.Println(inspectHelp)
		return nil

	case "checkpoints":
		entries, err := os.ReadDir(parentDir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				fmt.Println(entry.Name())
			}
		}
		return nil

	case "records":
		if len(args) != 1 {
			return fmt.Errorf("usage: records <checkpoint>")
		}
		records, err := loadCheckpoint(parentDir, args[0])
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%-6s %-10s offset=%-8d %s\n",
				filepath.Base(rec.SourceFile), rec.AccessModeName(), rec.Offset, rec.Path)
		}
		return nil

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: show <checkpoint> <n>")
		}
		records, err := loadCheckpoint(parentDir, args[0])
		if err != nil {
			return err
		}
		for _, rec := range records {
			if filepath.Base(rec.SourceFile) != args[1] {
				continue
			}
			fmt.Printf("file:   %s\n", rec.SourceFile)
			fmt.Printf("offset: %d\n", rec.Offset)
			fmt.Printf("flags:  %#o (%s)\n", rec.Flags, rec.AccessModeName())
			fmt.Printf("path:   %s\n", rec.Path)
			return nil
		}
		return fmt.Errorf("no kfd dump %q in checkpoint %q", args[1], args[0])

	default:
		return fmt.Errorf("unknown command %q, try 'help'", name)
	}
}

func loadCheckpoint(parentDir, checkpoint string) ([]*record.KfdRecord, error) {
	checkpointDir := filepath.Join(parentDir, checkpoint)

	var pi platinfo.PlatInfo
	if err := pi.Check(filepath.Join(checkpointDir, core.PlatinfoFileName)); err != nil {
		return nil, err
	}

	return core.ScanKfdRecords(checkpointDir, &pi)
}
