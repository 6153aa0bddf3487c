package snapshot

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"dirsync/internal/codec"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	codecs := map[string]codec.Codec{
		"json": codec.JSON{},
		"yaml": codec.YAML{},
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			fsys := memfs.New()
			snap := &Snapshot{
				Dir: "src",
				Records: []FileRecord{
					{Name: "b.txt", Hash: digestOf("b")},
					{Name: "a.txt", Hash: digestOf("a")},
				},
			}

			if err := Save(fsys, c, snap, "out/snapshot."+name); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(fsys, c, "out/snapshot."+name)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if loaded.Dir != snap.Dir {
				t.Errorf("Directory mismatch: expected %q, got %q", snap.Dir, loaded.Dir)
			}
			if len(loaded.Records) != len(snap.Records) {
				t.Fatalf("Expected %d records, got %d", len(snap.Records), len(loaded.Records))
			}
			for i, rec := range snap.Records {
				if loaded.Records[i] != rec {
					t.Errorf("Record %d mismatch: expected %v, got %v", i, rec, loaded.Records[i])
				}
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := memfs.New()

	_, err := Load(fsys, codec.JSON{}, "absent.json")
	if err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestLoad_RejectsMalformedRecords(t *testing.T) {
	fsys := memfs.New()

	data := `{
  "generator": "dirsync",
  "directory": "src",
  "records": [
    {"name": "a.txt", "hash": "not-a-digest"}
  ]
}`
	if err := util.WriteFile(fsys, "bad.json", []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := Load(fsys, codec.JSON{}, "bad.json")
	if err == nil {
		t.Fatal("Load should reject malformed records")
	}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord, got %v", err)
	}
}

func TestSave_WritesEnvelope(t *testing.T) {
	fsys := memfs.New()
	snap := &Snapshot{
		Dir:     "src",
		Records: []FileRecord{{Name: "a.txt", Hash: digestOf("a")}},
	}

	if err := Save(fsys, codec.JSON{}, snap, "snapshot.json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := util.ReadFile(fsys, "snapshot.json")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"generator": "dirsync"`) {
		t.Errorf("Envelope missing generator field:\n%s", data)
	}
}
