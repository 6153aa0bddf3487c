package snapshot

import "testing"

func TestRootDigest_Empty(t *testing.T) {
	snap := &Snapshot{Dir: "dir"}

	root, err := snap.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}
	if len(root) != 16 {
		t.Errorf("Expected 16 hex characters, got %d (%s)", len(root), root)
	}
}

func TestRootDigest_SingleRecord(t *testing.T) {
	snap := &Snapshot{
		Dir:     "dir",
		Records: []FileRecord{{Name: "a.txt", Hash: digestOf("a")}},
	}

	root, err := snap.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}

	empty := &Snapshot{Dir: "dir"}
	emptyRoot, err := empty.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}
	if root == emptyRoot {
		t.Error("Single-record root should differ from empty root")
	}
}

func TestRootDigest_OrderIndependent(t *testing.T) {
	recA := FileRecord{Name: "a.txt", Hash: digestOf("a")}
	recB := FileRecord{Name: "b.txt", Hash: digestOf("b")}
	recC := FileRecord{Name: "c.txt", Hash: digestOf("c")}

	forward := &Snapshot{Dir: "dir", Records: []FileRecord{recA, recB, recC}}
	reversed := &Snapshot{Dir: "dir", Records: []FileRecord{recC, recB, recA}}

	rootForward, err := forward.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}
	rootReversed, err := reversed.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}

	if rootForward != rootReversed {
		t.Error("Root digest should not depend on enumeration order")
	}
}

func TestRootDigest_SensitiveToContentAndName(t *testing.T) {
	base := &Snapshot{
		Dir: "dir",
		Records: []FileRecord{
			{Name: "a.txt", Hash: digestOf("a")},
			{Name: "b.txt", Hash: digestOf("b")},
		},
	}
	renamed := &Snapshot{
		Dir: "dir",
		Records: []FileRecord{
			{Name: "a.txt", Hash: digestOf("a")},
			{Name: "renamed.txt", Hash: digestOf("b")},
		},
	}
	edited := &Snapshot{
		Dir: "dir",
		Records: []FileRecord{
			{Name: "a.txt", Hash: digestOf("a")},
			{Name: "b.txt", Hash: digestOf("b!")},
		},
	}

	baseRoot, err := base.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}
	renamedRoot, err := renamed.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}
	editedRoot, err := edited.RootDigest()
	if err != nil {
		t.Fatalf("RootDigest failed: %v", err)
	}

	if baseRoot == renamedRoot {
		t.Error("Renaming a file should change the root digest")
	}
	if baseRoot == editedRoot {
		t.Error("Editing a file should change the root digest")
	}
}
