package beap

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Eligible reports whether the caller identified by handshakeID is the
// intended recipient of the package.
//
// Public mode is the auditable, no-check variant: every caller is
// eligible regardless of header content. Confidential mode is eligible
// iff the envelope's receiver binding matches the caller's handshake
// identifier; an envelope with no binding at all is eligible to no one.
//
// The comparison is constant-behavior: both identifiers are reduced to
// fixed-size SHA-256 digests and compared with subtle.ConstantTimeCompare,
// so neither the position of a mismatch nor a length difference is
// observable through timing. This is a correctness requirement of the
// stage, not an optimization.
func Eligible(pkg *Package, handshakeID string) bool {
	c, ok := pkg.Content.(*Confidential)
	if !ok {
		return true
	}

	if c.Binding == nil {
		return false
	}

	want := sha256.Sum256([]byte(c.Binding.HandshakeID))
	got := sha256.Sum256([]byte(handshakeID))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}
