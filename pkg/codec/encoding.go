// Package codec provides serialization helpers for results, stats snapshots,
// and log entries, with pluggable encoding.
//
// Default: JSON (stdlib, portable, human-readable)
// Optional: MessagePack (compact binary, faster for large payloads)
//
// Design Notes:
//   - JSON is the default for portability and debugging
//   - MsgPack is available for presentation collaborators that prefer a
//     compact binary exchange format
//   - All encoding errors include context for debugging
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encoding represents the serialization format.
type Encoding int

const (
	// JSON uses stdlib JSON encoding (default).
	JSON Encoding = iota
	// MsgPack uses MessagePack binary encoding.
	MsgPack
)

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	switch e {
	case JSON:
		return "json"
	case MsgPack:
		return "msgpack"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Marshal serializes v using the given encoding.
func Marshal(v any, enc Encoding) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("codec: cannot marshal nil value")
	}

	switch enc {
	case JSON:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: json marshal: %w", err)
		}
		return data, nil
	case MsgPack:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: msgpack marshal: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("codec: unknown encoding %d", int(enc))
	}
}

// Unmarshal deserializes data into the provided pointer using the given
// encoding.
func Unmarshal(data []byte, v any, enc Encoding) error {
	if len(data) == 0 {
		return fmt.Errorf("codec: cannot unmarshal empty data")
	}
	if v == nil {
		return fmt.Errorf("codec: target pointer cannot be nil")
	}

	switch enc {
	case JSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("codec: json unmarshal: %w", err)
		}
		return nil
	case MsgPack:
		if err := msgpack.Unmarshal(data, v); err != nil {
			return fmt.Errorf("codec: msgpack unmarshal: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("codec: unknown encoding %d", int(enc))
	}
}

// PrettyJSON formats JSON with indentation for human readability.
// Useful for debugging and admin surfaces.
func PrettyJSON(data []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("codec: invalid JSON: %w", err)
	}

	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: format JSON: %w", err)
	}
	return pretty, nil
}

// EstimateSize estimates the encoded size of a value in bytes, using the
// JSON encoding. This is approximate and intended for memory accounting.
func EstimateSize(v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(data)
}
