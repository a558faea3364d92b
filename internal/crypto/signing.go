package crypto

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// ManifestEntry is one artefact's contribution to the signed manifest:
// the artefact reference paired with its declared plaintext hash.
type ManifestEntry struct {
	Ref  string `json:"ref"`
	Hash string `json:"hash"`
}

// SigningInput captures every field bound by the envelope signature:
// header fields in canonical order, the payload bytes (base64url), and
// the artefact manifest.
type SigningInput struct {
	Version      string          `json:"version"`
	Encoding     string          `json:"encoding"`
	TemplateHash string          `json:"template_hash"`
	PolicyHash   string          `json:"policy_hash"`
	ContentHash  string          `json:"content_hash"`
	Payload      string          `json:"payload"`
	Manifest     []ManifestEntry `json:"manifest"`
}

// SigningBytes deterministically serializes the signing input to the
// exact byte sequence the producer signed. Serialization is JSON
// canonicalized per RFC 8785, so key order and number formatting can
// never cause a spurious mismatch between signer and verifier.
func SigningBytes(input SigningInput) ([]byte, error) {
	if input.Manifest == nil {
		input.Manifest = []ManifestEntry{}
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal signing input: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize signing input: %w", err)
	}

	return canonical, nil
}

// Digest returns the SHA-256 digest of data as URL-safe base64.
// This is the hash encoding used for artefact content commitments.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return ToBase64URL(sum[:])
}
