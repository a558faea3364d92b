// Package crypto provides the cryptographic primitives for the BEAP
// staged package-disclosure protocol.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - X25519 (RFC 7748): Elliptic-curve Diffie-Hellman key agreement
//     between the recipient's private key and the sender's public key.
//
//   - HKDF-SHA-512 (RFC 5869): Key derivation from the ECDH shared
//     secret, salted from the envelope, with distinct context labels for
//     the capsule key and the artefact key.
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD)
//     for the capsule payload and each artefact. Tampering with nonce or
//     ciphertext causes decryption to fail outright.
//
//   - Ed25519 (RFC 8032) and ML-DSA-65 (NIST FIPS 204): Digital
//     signature algorithms for envelope authenticity, selected by the
//     algorithm identifier in the envelope's signature block.
//
// Canonical signing bytes are produced via JSON Canonicalization
// (RFC 8785) over the header fields, payload, and artefact manifest, so
// signer and verifier always serialize the identical byte sequence.
//
// # Critical Security Notes
//
// Signature verification MUST be performed BEFORE decryption. Decrypting
// unauthenticated ciphertext may expose the system to chosen-ciphertext
// attacks. The pipeline in the root package enforces this ordering; use
// [VerifySignature] before [DecryptAESGCM] if calling this layer directly.
//
// Derived keys are scoped to a single disclosure attempt. Nothing in this
// package caches or retains key material between calls.
package crypto
