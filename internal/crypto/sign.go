package crypto

import (
	"bytes"
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// VerifySignature verifies a detached signature over message using the
// declared algorithm identifier and the signer's raw public key bytes.
func VerifySignature(algorithm string, publicKey, message, signature []byte) error {
	switch algorithm {
	case AlgEd25519:
		if len(publicKey) != Ed25519PublicKeySize {
			return ErrInvalidPublicKeySize
		}
		if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
			return ErrSignatureVerificationFailed
		}
		return nil

	case AlgMLDSA65:
		pk := &mldsa65.PublicKey{}
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return fmt.Errorf("unmarshal public key: %w", err)
		}
		if !mldsa65.Verify(pk, message, nil, signature) {
			return ErrSignatureVerificationFailed
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// CheckPinnedKey compares the envelope's embedded signer public key
// against a caller-pinned key. A nil pinned key means the caller pinned
// nothing and the embedded key is trusted as-is.
func CheckPinnedKey(embedded, pinned []byte) error {
	if pinned == nil {
		return nil
	}
	if !bytes.Equal(embedded, pinned) {
		return ErrSignerKeyMismatch
	}
	return nil
}

// Sign produces a detached signature over message. Exposed for tests and
// tooling that construct honest envelopes.
func Sign(algorithm string, privateKey, message []byte) ([]byte, error) {
	switch algorithm {
	case AlgEd25519:
		return ed25519.Sign(ed25519.PrivateKey(privateKey), message), nil

	case AlgMLDSA65:
		sk := &mldsa65.PrivateKey{}
		if err := sk.UnmarshalBinary(privateKey); err != nil {
			return nil, fmt.Errorf("unmarshal private key: %w", err)
		}
		sig := make([]byte, MLDSASignatureSize)
		mldsa65.SignTo(sk, message, nil, false, sig)
		return sig, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// GenerateSigningKey creates a signing keypair for the given algorithm.
// Exposed for tests and tooling.
func GenerateSigningKey(algorithm string) (publicKey, privateKey []byte, err error) {
	switch algorithm {
	case AlgEd25519:
		pub, priv, err := ed25519.GenerateKey(randReader)
		if err != nil {
			return nil, nil, err
		}
		return pub, priv, nil

	case AlgMLDSA65:
		pub, priv, err := mldsa65.GenerateKey(randReader)
		if err != nil {
			return nil, nil, err
		}
		pubBytes, err := pub.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		privBytes, err := priv.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		return pubBytes, privBytes, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
