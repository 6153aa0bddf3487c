package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"dirsync/internal/codec"
	"dirsync/internal/config"
	"dirsync/internal/packet"
	"dirsync/internal/snapshot"
)

var sendCmd = &cobra.Command{
	Use:   "send <directory> <output-packet>",
	Short: "Wrap a directory snapshot into a metadata packet file",
	Long: `Scan a directory and write its snapshot as a checksummed metadata packet,
the envelope a transport layer would put on the wire.`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(globalFlags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	absDir, err := filepath.Abs(args[0])
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

	c := codec.JSON{}
	pkt, err := packet.WrapSnapshot(c, filepath.Base(absDir), snap)
	if err != nil {
		return err
	}

	data, err := c.Marshal(pkt)
	if err != nil {
		return fmt.Errorf("failed to marshal packet: %w", err)
	}

	absOutput, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if dir := filepath.Dir(absOutput); dir != string(filepath.Separator) {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := util.WriteFile(fsys, absOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}

	fmt.Printf("✓ Metadata packet written\n")
	fmt.Printf("  Label: %s\n", pkt.Label)
	fmt.Printf("  Checksum: %s\n", pkt.Checksum)
	fmt.Printf("  Files: %d\n", snap.Len())
	fmt.Printf("  Output: %s\n", args[1])

	return nil
}
