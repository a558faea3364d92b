package crypto

import (
	"encoding/base64"
)

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes URL-safe base64 without padding.
func FromBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// DecodeBase64 decodes base64 in any common variant. Protocol values are
// base64url without padding, but producers in the wild pad or use the
// standard alphabet, so decoding is lenient.
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.StdEncoding.DecodeString(s)
}

// Base64Bytes handles JSON unmarshaling of base64-encoded binary fields.
// Wire values are base64url strings; this type decodes them to raw bytes
// and re-encodes on marshal.
type Base64Bytes []byte

// UnmarshalJSON implements json.Unmarshaler for Base64Bytes.
func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		encoded := string(data[1 : len(data)-1])
		if encoded == "" {
			*b = nil
			return nil
		}
		decoded, err := DecodeBase64(encoded)
		if err != nil {
			return err
		}
		*b = decoded
		return nil
	}

	// Raw JSON bytes; shouldn't happen for protocol fields.
	*b = data
	return nil
}

// MarshalJSON implements json.Marshaler for Base64Bytes.
func (b Base64Bytes) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + ToBase64URL(b) + `"`), nil
}
