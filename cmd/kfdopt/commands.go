package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xRadioAc7iv/go-kfdopt/kfdopt"
)

var (
	manifestPath string
	verbose      bool

	rootCmd = &cobra.Command{
		Use:   "kfdopt <parent-directory>",
		Short: "Consolidate the file dumps of a checkpoint corpus",
		Long: `kfdopt copies the source files referenced by the kfd dumps of every
checkpoint under the parent directory, keeps only one copy of each
read-only file referenced by multiple checkpoints, and rewrites the
dumps in place to point at the new relative locations.

Generate the checkpoints with the option --dump-after-open and without
using --dump-file.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE:          runConsolidate,
	}

	inspectCmd = &cobra.Command{
		Use:           "inspect <parent-directory>",
		Short:         "Interactively browse the kfd dumps of a checkpoint corpus",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE:          runInspect,
	}
)

func init() {
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "write a YAML report of the run to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every record outcome")
	rootCmd.AddCommand(inspectCmd)
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	// Arguments are validated by now; a failing run should not dump
	// the usage text on top of the actual error.
	cmd.SilenceUsage = true

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []kfdopt.Option{kfdopt.WithLogger(logger)}
	if manifestPath != "" {
		opts = append(opts, kfdopt.WithManifest(manifestPath))
	}

	result, err := kfdopt.Consolidate(args[0], opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kfdopt:", err)
		return err
	}

	fmt.Printf("records rewritten: %d\n", result.Stats.Records)
	fmt.Printf("shared copies:     %d (reused %d times)\n", result.Stats.SharedCopies, result.Stats.SharedReused)
	fmt.Printf("private copies:    %d\n", result.Stats.PrivateCopies)
	fmt.Printf("placeholders:      %d\n", result.Stats.Placeholders)

	return nil
}
