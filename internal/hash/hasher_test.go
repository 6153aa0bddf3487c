package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestHashFile_SmallFile(t *testing.T) {
	fsys := memfs.New()

	content := []byte("Hello, World!")
	if err := util.WriteFile(fsys, "test.txt", content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(fsys, "test.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	// Compute expected hash
	sum := sha256.Sum256(content)
	expected := hex.EncodeToString(sum[:])

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashFile_LargeFile(t *testing.T) {
	fsys := memfs.New()

	// Create a 1MB file, larger than the streaming buffer
	size := 1024 * 1024
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}

	if err := util.WriteFile(fsys, "large.bin", data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(fsys, "large.bin")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	sum := sha256.Sum256(data)
	expected := hex.EncodeToString(sum[:])

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashFile_NonExistent(t *testing.T) {
	fsys := memfs.New()

	_, err := HashFile(fsys, "nonexistent/file.txt")
	if err == nil {
		t.Error("HashFile should return error for nonexistent file")
	}
}

func TestHashFile_EmptyFile(t *testing.T) {
	fsys := memfs.New()

	if err := util.WriteFile(fsys, "empty.txt", []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(fsys, "empty.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	// SHA-256 of the empty string
	expected := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashFile_DifferentContent(t *testing.T) {
	fsys := memfs.New()

	if err := util.WriteFile(fsys, "a.txt", []byte("content-a"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := util.WriteFile(fsys, "b.txt", []byte("content-b"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hashA, err := HashFile(fsys, "a.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	hashB, err := HashFile(fsys, "b.txt")
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	if hashA == hashB {
		t.Error("Files with different content should have different hashes")
	}
}

func TestChecksum(t *testing.T) {
	data := []byte("test data")

	sum := Checksum(data)
	if len(sum) != 16 {
		t.Errorf("Expected 16 hex characters, got %d", len(sum))
	}

	// Same input should produce same output
	if sum != Checksum(data) {
		t.Error("Checksum should be deterministic")
	}

	if sum == Checksum([]byte("other data")) {
		t.Error("Different data should produce different checksums")
	}
}

func TestXXHashFunc(t *testing.T) {
	data := []byte("test data")

	hashBytes, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}

	// Test consistency - same input should produce same output
	hashBytes2, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed on second call: %v", err)
	}

	if hex.EncodeToString(hashBytes) != hex.EncodeToString(hashBytes2) {
		t.Error("XXHashFunc should be deterministic")
	}
}

func TestXXHashFunc_EmptyData(t *testing.T) {
	hashBytes, err := XXHashFunc([]byte{})
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}
}
