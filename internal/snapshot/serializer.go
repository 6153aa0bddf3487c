package snapshot

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dirsync/internal/codec"
)

const generatorName = "dirsync"

// manifest is the on-disk/wire envelope around a snapshot. The codec decides
// the concrete format; round-trip fidelity of name and hash strings is the
// only assumption made here.
type manifest struct {
	Generator string       `json:"generator" yaml:"generator"`
	Created   time.Time    `json:"created" yaml:"created"`
	Directory string       `json:"directory" yaml:"directory"`
	Records   []FileRecord `json:"records" yaml:"records"`
}

// Save encodes the snapshot with the given codec and writes it to path,
// creating parent directories as needed.
func Save(fsys billy.Filesystem, c codec.Codec, snap *Snapshot, path string) error {
	m := manifest{
		Generator: generatorName,
		Created:   time.Now(),
		Directory: snap.Dir,
		Records:   snap.Records,
	}

	data, err := c.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := util.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// Load reads a snapshot from path with the given codec. Every record is
// re-validated, so malformed hashes never enter a snapshot from the wire.
func Load(fsys billy.Filesystem, c codec.Codec, path string) (*Snapshot, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var m manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	records := make([]FileRecord, 0, len(m.Records))
	for _, r := range m.Records {
		rec, err := NewFileRecord(r.Name, r.Hash)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", path, err)
		}
		records = append(records, rec)
	}

	return &Snapshot{Dir: m.Directory, Records: records}, nil
}
