package crypto

import "errors"

var (
	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrKeyAgreementFailed is returned when X25519 key agreement produces
	// a degenerate shared secret (low-order peer public key).
	ErrKeyAgreementFailed = errors.New("key agreement failed")

	// ErrMissingSalt is returned when key derivation is attempted without
	// an envelope salt.
	ErrMissingSalt = errors.New("missing key derivation salt")

	// ErrSignatureVerificationFailed is returned when signature verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrSignerKeyMismatch is returned when the envelope's embedded signer
	// public key does not match the pinned key supplied by the caller.
	ErrSignerKeyMismatch = errors.New("signer public key mismatch: envelope key differs from pinned key")

	// ErrUnknownAlgorithm is returned when a signature algorithm identifier
	// is not recognized.
	ErrUnknownAlgorithm = errors.New("unknown signature algorithm")

	// ErrDecryptionFailed is returned when AEAD decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)
