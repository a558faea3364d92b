package beap

import "errors"

// Sentinel errors for errors.Is() checks
var (
	// ErrMalformedPackage is returned by ParsePackage when the envelope
	// framing is structurally invalid. It carries no detail about which
	// part of the structure was wrong.
	ErrMalformedPackage = errors.New("malformed package")

	// ErrMissingRecipientKey is returned when a confidential package is
	// decrypted without a recipient private key.
	ErrMissingRecipientKey = errors.New("recipient key is required")
)

// Caller-visible messages. Every internal failure collapses into one of
// these; see externalMessage for the single place the mapping lives.
const (
	// MsgVerificationFailed is the uniform message for every failure
	// before the decryption attempt, regardless of cause.
	MsgVerificationFailed = "Package verification failed"

	// MsgDecryptionFailed is the uniform message for every failure at or
	// after the decryption attempt.
	MsgDecryptionFailed = "Package decryption failed"

	// MsgNotForRecipient is the message for the distinct not-for-me
	// terminal outcome. It is a normal result, not an error.
	MsgNotForRecipient = "Package not for this recipient"

	// MsgInvalidCapsule is the message for a capsule that decrypted
	// cleanly but did not parse. It is slightly more specific than the
	// uniform messages because it occurs strictly after the recipient
	// was authorized to see the plaintext.
	MsgInvalidCapsule = "Invalid capsule content"
)

// failureKind is the internal error taxonomy. Kinds exist for operator
// diagnostics only; they never cross the caller boundary.
type failureKind int

const (
	kindMalformedTransport failureKind = iota
	kindIntegrityViolation
	kindNotEligibleRecipient
	kindMissingKeyAgreementInput
	kindSignatureInvalid
	kindKeyAgreementFailure
	kindCapsuleDecryptionFailure
	kindCapsuleMalformed
	kindArtefactDecryptionFailure
)

func (k failureKind) String() string {
	switch k {
	case kindMalformedTransport:
		return "malformed-transport"
	case kindIntegrityViolation:
		return "integrity-violation"
	case kindNotEligibleRecipient:
		return "not-eligible-recipient"
	case kindMissingKeyAgreementInput:
		return "missing-key-agreement-input"
	case kindSignatureInvalid:
		return "signature-invalid"
	case kindKeyAgreementFailure:
		return "key-agreement-failure"
	case kindCapsuleDecryptionFailure:
		return "capsule-decryption-failure"
	case kindCapsuleMalformed:
		return "capsule-malformed"
	case kindArtefactDecryptionFailure:
		return "artefact-decryption-failure"
	}
	return "unknown"
}

// externalMessage maps an internal failure kind to the caller-visible
// message. This is the only place the collapse happens, so the
// many-causes-one-message rule cannot drift between call sites.
func externalMessage(k failureKind) string {
	switch k {
	case kindNotEligibleRecipient:
		return MsgNotForRecipient
	case kindCapsuleMalformed:
		return MsgInvalidCapsule
	case kindCapsuleDecryptionFailure, kindArtefactDecryptionFailure:
		return MsgDecryptionFailed
	default:
		return MsgVerificationFailed
	}
}
