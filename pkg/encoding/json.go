package encoding

import (
	"encoding/base64"
	"fmt"
)

// Base64Bytes is a byte slice that serializes to standard base64 in
// JSON. Keys and values may be arbitrary binary, so JSON output renders
// them through this type.
type Base64Bytes []byte

// MarshalJSON implements json.Marshaler.
func (b Base64Bytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + base64.StdEncoding.EncodeToString(b) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON null leaves the slice
// nil.
func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	s, ok, err := unquoteJSON("base64", data)
	if err != nil || !ok {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String returns the base64-encoded string representation.
func (b Base64Bytes) String() string {
	return base64.StdEncoding.EncodeToString(b)
}

// unquoteJSON strips the quotes from a JSON string literal. The second
// return is false for JSON null.
func unquoteJSON(kind string, data []byte) (string, bool, error) {
	if len(data) == 0 {
		return "", false, fmt.Errorf("encoding: empty %s value", kind)
	}
	switch data[0] {
	case 'n': // null
		return "", false, nil
	case '"':
		if len(data) < 2 || data[len(data)-1] != '"' {
			return "", false, fmt.Errorf("encoding: invalid %s string", kind)
		}
		return string(data[1 : len(data)-1]), true, nil
	}
	return "", false, fmt.Errorf("encoding: %s value is not a string: %s", kind, data)
}
