package crypto

import (
	"crypto/rand"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// randReader is the random source used for key generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// KeyPair represents an X25519 keypair for ECDH key agreement.
type KeyPair struct {
	// PublicKey is the raw X25519 public key bytes.
	PublicKey []byte
	// SecretKey is the raw X25519 secret key bytes.
	SecretKey []byte
	// PublicKeyB64 is the public key encoded as URL-safe base64.
	PublicKeyB64 string
}

// GenerateKeyPair creates a new X25519 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	var secret, public x25519.Key
	if _, err := io.ReadFull(r, secret[:]); err != nil {
		return nil, err
	}
	x25519.KeyGen(&public, &secret)

	return &KeyPair{
		PublicKey:    append([]byte(nil), public[:]...),
		SecretKey:    append([]byte(nil), secret[:]...),
		PublicKeyB64: ToBase64URL(public[:]),
	}, nil
}

// KeyPairFromSecretKey reconstructs a keypair from the secret key.
// The X25519 public key is recomputed from the secret scalar.
func KeyPairFromSecretKey(secretKey []byte) (*KeyPair, error) {
	if len(secretKey) != X25519KeySize {
		return nil, ErrInvalidSecretKeySize
	}

	var secret, public x25519.Key
	copy(secret[:], secretKey)
	x25519.KeyGen(&public, &secret)

	return &KeyPair{
		PublicKey:    append([]byte(nil), public[:]...),
		SecretKey:    append([]byte(nil), secretKey...),
		PublicKeyB64: ToBase64URL(public[:]),
	}, nil
}

// SharedSecret performs X25519 key agreement between the local secret key
// and a peer public key. Low-order peer keys that would yield an all-zero
// shared secret are rejected.
func (k *KeyPair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if len(k.SecretKey) != X25519KeySize {
		return nil, ErrInvalidSecretKeySize
	}
	if len(peerPublicKey) != X25519KeySize {
		return nil, ErrInvalidPublicKeySize
	}

	var secret, public, shared x25519.Key
	copy(secret[:], k.SecretKey)
	copy(public[:], peerPublicKey)

	if !x25519.Shared(&shared, &secret, &public) {
		return nil, ErrKeyAgreementFailed
	}

	return append([]byte(nil), shared[:]...), nil
}
