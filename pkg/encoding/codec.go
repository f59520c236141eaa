// Package encoding converts keys and values between their binary form
// and the textual representations used on the command line and in JSON
// output.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Codec identifies a textual representation for binary data.
type Codec string

const (
	Raw    Codec = "raw"    // bytes passed through unchanged
	Hex    Codec = "hex"    // lowercase hexadecimal
	Base64 Codec = "base64" // standard base64
)

// ParseCodec maps a flag value to a Codec. Matching is case-insensitive.
func ParseCodec(name string) (Codec, error) {
	switch c := Codec(strings.ToLower(name)); c {
	case Raw, Hex, Base64:
		return c, nil
	}
	return "", fmt.Errorf("encoding: unknown codec %q (want raw, hex or base64)", name)
}

// Decode converts a textual argument to bytes.
func (c Codec) Decode(s string) ([]byte, error) {
	switch c {
	case Raw:
		return []byte(s), nil
	case Hex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("encoding: decode hex: %w", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("encoding: decode base64: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("encoding: unknown codec %q", string(c))
}

// Encode renders bytes in the codec's textual form. With Raw, data that
// is not printable UTF-8 is quoted so terminal output stays readable.
func (c Codec) Encode(p []byte) string {
	switch c {
	case Hex:
		return hex.EncodeToString(p)
	case Base64:
		return base64.StdEncoding.EncodeToString(p)
	}
	if isPrintable(p) {
		return string(p)
	}
	return strconv.Quote(string(p))
}

func isPrintable(p []byte) bool {
	if !utf8.Valid(p) {
		return false
	}
	for _, r := range string(p) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
