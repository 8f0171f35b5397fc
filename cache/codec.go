package cache

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/s2"
)

// Codec encodes/decodes cached values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for every key namespace.
var Default Codec = JSONS2{}

// JSONS2 encodes values as JSON and compresses them with s2.
// Match result sets are repetitive (factor names, reasoning strings), so
// compression pays for itself on the wire to the cache.
type JSONS2 struct{}

// Marshal implements Codec.
func (JSONS2) Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return s2.Encode(nil, raw), nil
}

// Unmarshal implements Codec.
func (JSONS2) Unmarshal(data []byte, v any) error {
	raw, err := s2.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("s2 decode: %w", err)
	}
	return json.Unmarshal(raw, v)
}

// Name implements Codec.
func (JSONS2) Name() string { return "json+s2" }
