package beap

import (
	"fmt"

	"github.com/beapkit/beap-go/internal/crypto"
)

// VerifyPackageSignature recomputes the canonical signing payload from
// the package and verifies the envelope signature over it.
//
// The signed representation covers the header fields in canonical order,
// the payload bytes (ciphertext in confidential mode, plaintext in
// public mode), and the artefact manifest of (reference, declared
// plaintext hash) pairs. pinnedKey, when non-nil, is the signer public
// key the caller expects for the envelope's key identifier; it must
// match the embedded key.
//
// Every failure yields the identical invalid result. The cause is
// returned alongside for the diagnostics channel only and must not be
// surfaced to callers.
func VerifyPackageSignature(pkg *Package, pinnedKey []byte) (VerificationResult, error) {
	signingBytes, err := packageSigningBytes(pkg)
	if err != nil {
		return invalid(StageSignature), err
	}

	if err := crypto.CheckPinnedKey(pkg.Signature.SignerPublicKey, pinnedKey); err != nil {
		return invalid(StageSignature), err
	}

	if err := crypto.VerifySignature(
		pkg.Signature.Algorithm,
		pkg.Signature.SignerPublicKey,
		signingBytes,
		pkg.Signature.Signature,
	); err != nil {
		return invalid(StageSignature), err
	}

	return valid(StageSignature), nil
}

// packageSigningBytes builds the exact byte sequence the producer must
// have signed for this package.
func packageSigningBytes(pkg *Package) ([]byte, error) {
	input := crypto.SigningInput{
		Version:      pkg.Header.Version,
		Encoding:     string(pkg.Header.Encoding),
		TemplateHash: pkg.Header.TemplateHash,
		PolicyHash:   pkg.Header.PolicyHash,
		ContentHash:  pkg.Header.ContentHash,
	}

	switch c := pkg.Content.(type) {
	case *Confidential:
		input.Payload = crypto.ToBase64URL(c.Payload.Ciphertext)
		input.Manifest = make([]crypto.ManifestEntry, len(c.Artefacts))
		for i, a := range c.Artefacts {
			input.Manifest[i] = crypto.ManifestEntry{Ref: a.Ref, Hash: a.PlaintextHash}
		}

	case *Public:
		input.Payload = crypto.ToBase64URL(c.Payload)
		input.Manifest = make([]crypto.ManifestEntry, len(c.Artefacts))
		for i, a := range c.Artefacts {
			input.Manifest[i] = crypto.ManifestEntry{Ref: a.Ref, Hash: a.Hash}
		}

	default:
		return nil, fmt.Errorf("unknown content variant %T", pkg.Content)
	}

	return crypto.SigningBytes(input)
}
