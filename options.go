package beap

import (
	"github.com/beapkit/beap-go/internal/crypto"
)

// RecipientKey wraps an X25519 keypair used for key agreement with the
// package sender.
type RecipientKey struct {
	kp *crypto.KeyPair
}

// GenerateRecipientKey creates a new X25519 recipient keypair.
func GenerateRecipientKey() (*RecipientKey, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &RecipientKey{kp: kp}, nil
}

// RecipientKeyFromBytes reconstructs a recipient key from the raw
// 32-byte X25519 secret key.
func RecipientKeyFromBytes(secretKey []byte) (*RecipientKey, error) {
	kp, err := crypto.KeyPairFromSecretKey(secretKey)
	if err != nil {
		return nil, err
	}
	return &RecipientKey{kp: kp}, nil
}

// PublicKey returns the raw X25519 public key bytes.
func (k *RecipientKey) PublicKey() []byte {
	return append([]byte(nil), k.kp.PublicKey...)
}

// SecretKey returns the raw X25519 secret key bytes.
func (k *RecipientKey) SecretKey() []byte {
	return append([]byte(nil), k.kp.SecretKey...)
}

// DecryptOptions are the per-call inputs to Decrypt.
//
// HandshakeID, SenderPublicKey, and RecipientKey are required when the
// package is confidential; their absence is itself a rejected outcome
// with the uniform message.
type DecryptOptions struct {
	// HandshakeID is the caller's local handshake identifier.
	HandshakeID string
	// SenderPublicKey is the sender's raw X25519 public key.
	SenderPublicKey []byte
	// RecipientKey is the caller's X25519 keypair.
	RecipientKey *RecipientKey
	// SkipSignatureVerification disables the signature check. An opt-out
	// intended for auditing tools only; never set it on a trust path.
	SkipSignatureVerification bool
	// SignerPublicKeys pins expected signer public keys by key
	// identifier. When the envelope's keyId has an entry here, the
	// embedded signer key must match it.
	SignerPublicKeys map[string][]byte
	// Diagnostics receives operator-only failure detail. Defaults to
	// DiscardDiagnostics.
	Diagnostics Diagnostics
}

// Recipient bundles the long-lived inputs of one recipient identity so
// callers don't rebuild DecryptOptions per package.
type Recipient struct {
	key         *RecipientKey
	handshakeID string
	pinnedKeys  map[string][]byte
	diags       Diagnostics
}

// RecipientOption configures a Recipient.
type RecipientOption func(*Recipient)

// WithPinnedSignerKey pins the expected signer public key for a key
// identifier.
func WithPinnedSignerKey(keyID string, publicKey []byte) RecipientOption {
	return func(r *Recipient) {
		r.pinnedKeys[keyID] = append([]byte(nil), publicKey...)
	}
}

// WithDiagnostics sets the operator diagnostics channel.
func WithDiagnostics(d Diagnostics) RecipientOption {
	return func(r *Recipient) {
		r.diags = d
	}
}

// NewRecipient creates a recipient identity from a handshake identifier
// and an X25519 keypair.
func NewRecipient(handshakeID string, key *RecipientKey, opts ...RecipientOption) (*Recipient, error) {
	if key == nil {
		return nil, ErrMissingRecipientKey
	}

	r := &Recipient{
		key:         key,
		handshakeID: handshakeID,
		pinnedKeys:  make(map[string][]byte),
		diags:       DiscardDiagnostics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Decrypt runs the disclosure pipeline for this recipient.
// senderPublicKey is the package sender's raw X25519 public key.
func (r *Recipient) Decrypt(pkg *Package, senderPublicKey []byte) *DecryptionResult {
	return Decrypt(pkg, &DecryptOptions{
		HandshakeID:      r.handshakeID,
		SenderPublicKey:  senderPublicKey,
		RecipientKey:     r.key,
		SignerPublicKeys: r.pinnedKeys,
		Diagnostics:      r.diags,
	})
}
