package beap

import (
	"encoding/json"
)

// Mode identifies the envelope encoding variant.
type Mode string

const (
	// ModeConfidential is the encrypted, eligibility-gated variant (qBEAP).
	ModeConfidential Mode = "qbeap"
	// ModePublic is the unencrypted, auditable variant (pBEAP).
	ModePublic Mode = "pbeap"
)

// SupportedVersion is the single protocol version this library accepts.
const SupportedVersion = "1.0"

// ArtefactKind classifies an artefact as a rendered page image or an
// original file.
type ArtefactKind string

const (
	// ArtefactRaster is a rendered page image.
	ArtefactRaster ArtefactKind = "raster"
	// ArtefactOriginal is an original file.
	ArtefactOriginal ArtefactKind = "original"
)

// Header holds the envelope fields common to both encoding variants.
// Receiver binding and key-derivation salt are confidential-mode
// concepts and live on [Confidential], not here.
type Header struct {
	// Version is the protocol version string.
	Version string
	// Encoding is the declared encoding mode.
	Encoding Mode
	// TemplateHash is the commitment hash over the package template.
	TemplateHash string
	// PolicyHash is the commitment hash over the disclosure policy.
	PolicyHash string
	// ContentHash is the commitment hash over the package content.
	ContentHash string
}

// Signature is the envelope signature block. It is produced outside this
// library and consumed exactly once, by signature verification.
type Signature struct {
	// Algorithm is the signature algorithm identifier ("ed25519" or "ml-dsa-65").
	Algorithm string
	// KeyID identifies the signer key.
	KeyID string
	// Signature is the raw detached signature bytes.
	Signature []byte
	// SignerPublicKey is the signer's raw public key as embedded in the
	// envelope. Callers may pin an expected key per KeyID; a mismatch is
	// a signature failure.
	SignerPublicKey []byte
}

// ReceiverBinding binds a confidential package to one intended recipient
// via an opaque handshake identifier established out-of-band.
type ReceiverBinding struct {
	HandshakeID string
}

// EncryptedPayload is the AEAD-encrypted capsule blob.
type EncryptedPayload struct {
	Nonce      []byte
	Ciphertext []byte
}

// EncryptedArtefact is one AEAD-encrypted binary artefact together with
// its declared plaintext hash.
type EncryptedArtefact struct {
	Ref           string
	AttachmentID  string
	Kind          ArtefactKind
	Page          *int
	MimeType      string
	Nonce         []byte
	Ciphertext    []byte
	PlaintextHash string
	Width         int
	Height        int
}

// PlainArtefact is one plaintext binary artefact as carried by a
// public-mode package.
type PlainArtefact struct {
	Ref          string
	AttachmentID string
	Kind         ArtefactKind
	Page         *int
	MimeType     string
	Content      []byte
	Hash         string
	Width        int
	Height       int
}

// Content is the closed sum over the two encoding variants. Exactly
// [Confidential] and [Public] implement it; confidential-only fields
// (receiver binding, salt, ciphertexts) cannot exist on a public
// package by construction.
type Content interface {
	mode() Mode
}

// Confidential is the qBEAP content variant: receiver binding, salt,
// encrypted capsule payload, and encrypted artefacts.
type Confidential struct {
	// Binding is the receiver binding, or nil when the envelope carries
	// none. A nil binding makes every recipient ineligible.
	Binding *ReceiverBinding
	// Salt is the key-derivation salt.
	Salt []byte
	// Payload is the encrypted capsule blob.
	Payload EncryptedPayload
	// Artefacts are the encrypted artefacts, possibly empty.
	Artefacts []EncryptedArtefact
}

func (*Confidential) mode() Mode { return ModeConfidential }

// Public is the pBEAP content variant: plaintext capsule bytes and
// plaintext artefacts.
type Public struct {
	// Payload is the plaintext capsule document bytes.
	Payload []byte
	// Artefacts are the plaintext artefacts, possibly empty.
	Artefacts []PlainArtefact
}

func (*Public) mode() Mode { return ModePublic }

// Package is one parsed BEAP envelope: exactly one header, one
// signature, one content variant, and opaque metadata passed through
// unchanged. Packages are immutable after parsing.
type Package struct {
	Header    Header
	Signature Signature
	Content   Content
	Metadata  json.RawMessage
}

// StructuralMode reports the encoding variant implied by the package
// structure (which payload section was present on the wire). The
// integrity verifier checks that Header.Encoding agrees with it.
func (p *Package) StructuralMode() Mode {
	return p.Content.mode()
}
