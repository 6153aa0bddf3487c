package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"dirsync/internal/codec"
	"dirsync/internal/config"
	"dirsync/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [directory] [output-json-filename]",
	Short: "Generate a directory snapshot and save it to a JSON file",
	Long: `Scan the direct-child files of a directory, hash each file's content and
save the resulting snapshot. A missing directory is created empty rather
than failing. Without a directory argument the configured source_dir is
scanned.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(globalFlags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := cfg.SourceDir
	if len(args) >= 1 {
		dir = args[0]
	}

	// Set output path - from args, config, or default
	var outputPath string
	if len(args) == 2 {
		outputPath = args[1]
	}
	if outputPath == "" {
		outputPath = cfg.OutputFile
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	fsys := osfs.New("/")

	if err := snapshot.EnsureDirectory(fsys, absDir); err != nil {
		return err
	}

	fmt.Printf("Scanning directory: %s\n", absDir)

	snap, err := generate(cmd, fsys, absDir, cfg)
	if err != nil {
		return err
	}

	root, err := snap.RootDigest()
	if err != nil {
		return fmt.Errorf("failed to compute root digest: %w", err)
	}

	// If no output path specified, use the root digest as filename in ./output/
	if outputPath == "" {
		outputPath = filepath.Join("output", root+".json")
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := snapshot.Save(fsys, codec.JSON{}, snap, absOutput); err != nil {
		return err
	}

	fmt.Printf("✓ Snapshot generated successfully\n")
	fmt.Printf("  Root digest: %s\n", root)
	fmt.Printf("  Files: %d\n", snap.Len())
	fmt.Printf("  Output: %s\n", outputPath)

	return nil
}
