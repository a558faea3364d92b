package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-512.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// SessionKeys holds the two symmetric keys derived for one disclosure
// attempt. Both are derived from the same X25519 shared secret but with
// distinct HKDF info labels, so neither can be computed from the other.
type SessionKeys struct {
	// CapsuleKey is the AES-256 key for the capsule payload.
	CapsuleKey []byte
	// ArtefactKey is the AES-256 key for the associated artefacts.
	ArtefactKey []byte
}

// DeriveSessionKeys derives the capsule and artefact keys from a shared
// secret and the envelope's key-derivation salt. The salt is mandatory:
// it is what binds the derived keys to one specific envelope.
func DeriveSessionKeys(sharedSecret, salt []byte) (*SessionKeys, error) {
	if len(salt) == 0 {
		return nil, ErrMissingSalt
	}

	capsuleKey, err := DeriveKey(sharedSecret, salt, []byte(CapsuleKeyContext), AESKeySize)
	if err != nil {
		return nil, fmt.Errorf("derive capsule key: %w", err)
	}

	artefactKey, err := DeriveKey(sharedSecret, salt, []byte(ArtefactKeyContext), AESKeySize)
	if err != nil {
		return nil, fmt.Errorf("derive artefact key: %w", err)
	}

	return &SessionKeys{CapsuleKey: capsuleKey, ArtefactKey: artefactKey}, nil
}
