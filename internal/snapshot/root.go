package snapshot

import (
	"encoding/hex"
	"fmt"
	"sort"

	mt "github.com/txaty/go-merkletree"

	"dirsync/internal/hash"
)

// emptyRootSeed feeds the root digest of a snapshot with no records.
var emptyRootSeed = []byte("empty-snapshot")

type recordBlock struct {
	rec FileRecord
}

func (b recordBlock) Serialize() ([]byte, error) {
	return []byte(b.rec.Name + "\x00" + b.rec.Hash), nil
}

// RootDigest folds the snapshot's records into a single merkle root hash,
// giving a cheap whole-snapshot equality probe: two snapshots with the same
// multiset of (name, hash) pairs produce the same root regardless of
// enumeration order. Leaves are sorted by name before the tree is built.
func (s *Snapshot) RootDigest() (string, error) {
	records := make([]FileRecord, len(s.Records))
	copy(records, s.Records)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	// go-merkletree needs at least two blocks.
	switch len(records) {
	case 0:
		sum, err := hash.XXHashFunc(emptyRootSeed)
		if err != nil {
			return "", fmt.Errorf("failed to hash empty snapshot: %w", err)
		}
		return hex.EncodeToString(sum), nil
	case 1:
		data, _ := recordBlock{records[0]}.Serialize()
		sum, err := hash.XXHashFunc(data)
		if err != nil {
			return "", fmt.Errorf("failed to hash single record: %w", err)
		}
		return hex.EncodeToString(sum), nil
	}

	blocks := make([]mt.DataBlock, len(records))
	for i, rec := range records {
		blocks[i] = recordBlock{rec}
	}

	tree, err := mt.New(&mt.Config{HashFunc: hash.XXHashFunc}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return hex.EncodeToString(tree.Root), nil
}
