// Dirsync builds content-addressed directory snapshots and diffs them.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"

	"dirsync/internal/config"
	"dirsync/internal/progress"
	"dirsync/internal/snapshot"
)

var globalFlags struct {
	configPath string
	workers    int
}

var rootCmd = &cobra.Command{
	Use:   "dirsync",
	Short: "Content-addressed directory snapshots and diffs",
	Long: `Dirsync scans a directory into a snapshot of (name, content hash) records
and derives the minimal differences between two snapshots, classifying each
as an addition, a rename or a removal. Content hashes, not names or
timestamps, are the identity key, so a pure rename is told apart from a
delete plus add.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.configPath, "config", "c",
		"config.yaml", "Config file path")
	rootCmd.PersistentFlags().IntVarP(&globalFlags.workers, "workers", "w",
		runtime.NumCPU()*2, "Number of hash worker goroutines")

	rootCmd.AddCommand(snapshotCmd, diffCmd, sendCmd)
}

// resolveWorkers lets the config override the default, but an explicit flag
// beats both.
func resolveWorkers(cmd *cobra.Command, cfg *config.Config) int {
	if cfg.Workers > 0 && !cmd.Root().PersistentFlags().Changed("workers") {
		return cfg.Workers
	}
	return globalFlags.workers
}

// generate runs a snapshot scan with a progress bar over the hashing phase.
func generate(cmd *cobra.Command, fsys billy.Filesystem, dir string, cfg *config.Config) (*snapshot.Snapshot, error) {
	// Pre-count direct-child files so the bar has a total; Generate
	// surfaces any enumeration error itself.
	total := 0
	if entries, err := fsys.ReadDir(dir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && entry.Mode().IsRegular() {
				total++
			}
		}
	}

	fmt.Printf("Found %d files\n", total)
	fmt.Println("Hashing files...")

	bar := progress.New(int64(total))

	snap, err := snapshot.Generate(fsys, dir, snapshot.Options{
		Exclude:  cfg.Exclude,
		Workers:  resolveWorkers(cmd, cfg),
		Progress: bar,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate snapshot: %w", err)
	}

	bar.Finish()
	return snap, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
