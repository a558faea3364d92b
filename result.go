package beap

import (
	"encoding/json"
	"sort"
	"time"
)

// Outcome is the terminal state of a disclosure attempt.
type Outcome string

const (
	// OutcomeDecrypted means the package was verified and its contents
	// disclosed.
	OutcomeDecrypted Outcome = "decrypted"
	// OutcomeRejected means the package failed somewhere in the
	// pipeline. The message does not say where.
	OutcomeRejected Outcome = "rejected"
	// OutcomeNotForRecipient means the caller is not the intended
	// recipient of a confidential package. A normal result, not an error.
	OutcomeNotForRecipient Outcome = "not-for-recipient"
)

// DecryptionResult is the outcome of one disclosure attempt. On success
// Package is set; otherwise Message carries one of the uniform
// caller-visible strings. The type has no field capable of holding the
// internal failure reason.
type DecryptionResult struct {
	Outcome Outcome
	Message string
	Package *DecryptedPackage
}

// Success reports whether the package was disclosed.
func (r *DecryptionResult) Success() bool {
	return r.Outcome == OutcomeDecrypted
}

// VerificationSummary records how the envelope signature was handled for
// a disclosed package.
type VerificationSummary struct {
	// SignatureVerified is true when the signature was checked and valid.
	SignatureVerified bool
	// Skipped is true when the caller opted out of signature
	// verification (auditing tools only).
	Skipped bool
	// Algorithm is the signature algorithm identifier from the envelope.
	Algorithm string
	// KeyID is the signer key identifier from the envelope.
	KeyID string
	// VerifiedAt is when the verification decision was made.
	VerifiedAt time.Time
}

// DecryptedArtefact is one disclosed binary artefact.
type DecryptedArtefact struct {
	// Ref is the artefact reference identifier.
	Ref string
	// AttachmentID is the owning attachment's identifier.
	AttachmentID string
	// Kind classifies the artefact as raster or original.
	Kind ArtefactKind
	// Page is the page number for raster artefacts, if declared.
	Page *int
	// MimeType is the artefact MIME type.
	MimeType string
	// Content is the decoded artefact bytes.
	Content []byte
	// ContentHash is the artefact content hash.
	ContentHash string
	// Width and Height are pixel dimensions for raster artefacts.
	Width  int
	Height int
	// Length is the byte length of Content.
	Length int
}

// DecryptedPackage is a fully disclosed package: header, capsule
// document, artefacts, pass-through metadata, and the verification
// summary. Instances are created fresh per disclosure attempt and are
// not retained by the library.
type DecryptedPackage struct {
	Header       Header
	Capsule      Capsule
	Artefacts    []DecryptedArtefact
	Metadata     json.RawMessage
	Verification VerificationSummary
}

// ArtefactByRef looks up a decrypted artefact by its reference.
func (p *DecryptedPackage) ArtefactByRef(ref string) (*DecryptedArtefact, bool) {
	for i := range p.Artefacts {
		if p.Artefacts[i].Ref == ref {
			return &p.Artefacts[i], true
		}
	}
	return nil, false
}

// ArtefactsForAttachment returns all artefacts owned by an attachment.
func (p *DecryptedPackage) ArtefactsForAttachment(attachmentID string) []DecryptedArtefact {
	var out []DecryptedArtefact
	for _, a := range p.Artefacts {
		if a.AttachmentID == attachmentID {
			out = append(out, a)
		}
	}
	return out
}

// OriginalArtefact returns the original-file artefact for an attachment.
func (p *DecryptedPackage) OriginalArtefact(attachmentID string) (*DecryptedArtefact, bool) {
	for i := range p.Artefacts {
		if p.Artefacts[i].AttachmentID == attachmentID && p.Artefacts[i].Kind == ArtefactOriginal {
			return &p.Artefacts[i], true
		}
	}
	return nil, false
}

// RasterArtefacts returns an attachment's raster artefacts sorted by
// page number. Artefacts without a page number sort last.
func (p *DecryptedPackage) RasterArtefacts(attachmentID string) []DecryptedArtefact {
	var out []DecryptedArtefact
	for _, a := range p.Artefacts {
		if a.AttachmentID == attachmentID && a.Kind == ArtefactRaster {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Page, out[j].Page
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})

	return out
}
