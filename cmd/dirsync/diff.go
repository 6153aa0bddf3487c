package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"dirsync/internal/codec"
	"dirsync/internal/config"
	"dirsync/internal/diff"
	"dirsync/internal/snapshot"
)

var diffCmd = &cobra.Command{
	Use:   "diff <reference> <comparison>",
	Short: "Diff two snapshots or directories",
	Long: `Compare a reference snapshot (A) against a comparison snapshot (B). Each
argument is either a directory to scan or a saved snapshot JSON file.
Exits 1 when differences are found, 0 otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(globalFlags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fsys := osfs.New("/")

	reference, err := loadOrGenerate(cmd, fsys, args[0], cfg)
	if err != nil {
		return err
	}
	comparison, err := loadOrGenerate(cmd, fsys, args[1], cfg)
	if err != nil {
		return err
	}

	refRoot, err := reference.RootDigest()
	if err != nil {
		return fmt.Errorf("failed to compute root digest: %w", err)
	}
	cmpRoot, err := comparison.RootDigest()
	if err != nil {
		return fmt.Errorf("failed to compute root digest: %w", err)
	}

	// Equal roots mean the same (name, hash) multiset - skip the full diff.
	if refRoot == cmpRoot {
		fmt.Println("Snapshots identical (root digests match).")
		return nil
	}

	result := diff.Diff(reference, comparison)
	fmt.Println(diff.FormatReport(result))

	if result.HasChanges() {
		os.Exit(1)
	}
	return nil
}

// loadOrGenerate treats a regular-file argument as a saved snapshot and a
// directory argument as a scan target.
func loadOrGenerate(cmd *cobra.Command, fsys billy.Filesystem, path string, cfg *config.Config) (*snapshot.Snapshot, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if info, err := fsys.Stat(abs); err == nil && !info.IsDir() {
		snap, err := snapshot.Load(fsys, codec.JSON{}, abs)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		fmt.Printf("Loaded snapshot: %s (%d files)\n", abs, snap.Len())
		return snap, nil
	}

	fmt.Printf("Scanning directory: %s\n", abs)
	return generate(cmd, fsys, abs, cfg)
}
