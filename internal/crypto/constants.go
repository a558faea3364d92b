package crypto

const (
	// CapsuleKeyContext is the HKDF info label for the capsule key.
	CapsuleKeyContext = "beap:capsule:v1"
	// ArtefactKeyContext is the HKDF info label for the artefact key.
	// Distinct from CapsuleKeyContext so the two keys derived from one
	// shared secret are cryptographically independent.
	ArtefactKeyContext = "beap:artefact:v1"

	// X25519KeySize is the size of an X25519 public or secret key in bytes.
	X25519KeySize = 32
	// X25519SharedSize is the size of an X25519 shared secret in bytes.
	X25519SharedSize = 32

	// Ed25519PublicKeySize is the size of an Ed25519 public key in bytes.
	Ed25519PublicKeySize = 32
	// Ed25519SignatureSize is the size of an Ed25519 signature in bytes.
	Ed25519SignatureSize = 64

	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = 1952
	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = 3309

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16
)

// Signature algorithm identifiers carried in the envelope's signature block.
const (
	AlgEd25519 = "ed25519"
	AlgMLDSA65 = "ml-dsa-65"
)
