// Package codec abstracts the wire format used to persist and exchange
// snapshots and packets. Callers inject a Codec instead of hard-wiring a
// format, so the core round-trips through any implementation.
package codec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec turns values into wire/storage bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON encodes values as indented JSON.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAML encodes values as YAML.
type YAML struct{}

func (YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
