package snapshot

import (
	"errors"
	"fmt"
)

// DigestLength is the hex length of a content hash (SHA-256).
const DigestLength = 64

// ErrMalformedRecord rejects file records with an empty name or a hash that
// is not a lowercase 64-character hex digest.
var ErrMalformedRecord = errors.New("malformed file record")

// FileRecord identifies one file by name and full-content digest. The hash,
// not the name, is the identity key when two snapshots are compared.
type FileRecord struct {
	Name string `json:"name" yaml:"name"`
	Hash string `json:"hash" yaml:"hash"`
}

// NewFileRecord validates name and hash before they can enter a snapshot.
func NewFileRecord(name, hash string) (FileRecord, error) {
	if name == "" {
		return FileRecord{}, fmt.Errorf("%w: empty name", ErrMalformedRecord)
	}
	if !validDigest(hash) {
		return FileRecord{}, fmt.Errorf("%w: %q is not a %d-character lowercase hex digest",
			ErrMalformedRecord, hash, DigestLength)
	}
	return FileRecord{Name: name, Hash: hash}, nil
}

func validDigest(hash string) bool {
	if len(hash) != DigestLength {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Snapshot is the ordered set of file records for one directory at one point
// in time. Records keep filesystem enumeration order. A snapshot is never
// mutated after Generate or Load returns it.
type Snapshot struct {
	Dir     string       `json:"directory" yaml:"directory"`
	Records []FileRecord `json:"records" yaml:"records"`
}

// Len returns the number of file records.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// Names returns the record names in enumeration order.
func (s *Snapshot) Names() []string {
	names := make([]string, len(s.Records))
	for i, rec := range s.Records {
		names[i] = rec.Name
	}
	return names
}
