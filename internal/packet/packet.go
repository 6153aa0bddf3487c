// Package packet defines the plain envelope types a higher transport layer
// exchanges between peers. No transport lives here; packets are built,
// checksummed and unwrapped, nothing else.
package packet

import (
	"errors"
	"fmt"

	"dirsync/internal/codec"
	"dirsync/internal/hash"
	"dirsync/internal/snapshot"
)

type Kind string

const (
	KindMetadata Kind = "metadata"
	KindFile     Kind = "file"
)

var (
	ErrChecksumMismatch = errors.New("packet checksum mismatch")
	ErrKindMismatch     = errors.New("unexpected packet kind")
)

// DataPacket wraps an encoded payload with a type tag, a label and an
// xxHash64 payload checksum.
type DataPacket struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Label    string `json:"label" yaml:"label"`
	Checksum string `json:"checksum" yaml:"checksum"`
	Payload  []byte `json:"payload" yaml:"payload"`
}

// FileContent carries one file's raw bytes.
type FileContent struct {
	Name string `json:"name" yaml:"name"`
	Data []byte `json:"data" yaml:"data"`
}

// Verify recomputes the payload checksum and compares it to the stamped one.
func (p *DataPacket) Verify() error {
	if sum := hash.Checksum(p.Payload); sum != p.Checksum {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, sum, p.Checksum)
	}
	return nil
}

// WrapSnapshot encodes a snapshot into a metadata packet.
func WrapSnapshot(c codec.Codec, label string, snap *snapshot.Snapshot) (*DataPacket, error) {
	payload, err := c.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot payload: %w", err)
	}
	return &DataPacket{
		Kind:     KindMetadata,
		Label:    label,
		Checksum: hash.Checksum(payload),
		Payload:  payload,
	}, nil
}

// UnwrapSnapshot verifies and decodes a metadata packet. Records are
// re-validated so malformed entries from the wire are rejected here, before
// the snapshot can reach the differ.
func UnwrapSnapshot(c codec.Codec, p *DataPacket) (*snapshot.Snapshot, error) {
	if p.Kind != KindMetadata {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrKindMismatch, p.Kind, KindMetadata)
	}
	if err := p.Verify(); err != nil {
		return nil, err
	}

	var snap snapshot.Snapshot
	if err := c.Unmarshal(p.Payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot payload: %w", err)
	}
	for _, rec := range snap.Records {
		if _, err := snapshot.NewFileRecord(rec.Name, rec.Hash); err != nil {
			return nil, err
		}
	}
	return &snap, nil
}

// WrapFile encodes one file's content into a file packet labeled with the
// file's name.
func WrapFile(c codec.Codec, content FileContent) (*DataPacket, error) {
	payload, err := c.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal file payload: %w", err)
	}
	return &DataPacket{
		Kind:     KindFile,
		Label:    content.Name,
		Checksum: hash.Checksum(payload),
		Payload:  payload,
	}, nil
}

// UnwrapFile verifies and decodes a file packet.
func UnwrapFile(c codec.Codec, p *DataPacket) (FileContent, error) {
	if p.Kind != KindFile {
		return FileContent{}, fmt.Errorf("%w: got %q, want %q", ErrKindMismatch, p.Kind, KindFile)
	}
	if err := p.Verify(); err != nil {
		return FileContent{}, err
	}

	var content FileContent
	if err := c.Unmarshal(p.Payload, &content); err != nil {
		return FileContent{}, fmt.Errorf("failed to unmarshal file payload: %w", err)
	}
	return content, nil
}
