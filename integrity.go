package beap

// Stage identifies the pipeline stage at which a verification verdict
// was reached.
type Stage string

const (
	StageParse       Stage = "parse"
	StageIntegrity   Stage = "integrity"
	StageEligibility Stage = "eligibility"
	StageSignature   Stage = "signature"
	StageKeys        Stage = "keys"
	StageCapsule     Stage = "capsule"
	StageArtefacts   Stage = "artefacts"
)

// VerificationResult is a tagged verification outcome: valid or invalid,
// the stage that decided, and a caller-visible message. The type has no
// field for the internal reason; that detail goes to the diagnostics
// channel only.
type VerificationResult struct {
	Valid   bool
	Stage   Stage
	Message string
}

func valid(stage Stage) VerificationResult {
	return VerificationResult{Valid: true, Stage: stage}
}

func invalid(stage Stage) VerificationResult {
	return VerificationResult{Valid: false, Stage: stage, Message: MsgVerificationFailed}
}

// VerifyIntegrity validates the envelope's structural commitments:
// supported protocol version, known encoding mode that agrees with the
// content variant, all three commitment hashes present, and a signature
// present. The checks run in order and the first failure wins, but every
// failure yields the identical result; the caller cannot tell which
// check tripped. Payload and artefact bytes are never touched here.
func VerifyIntegrity(pkg *Package) VerificationResult {
	if pkg.Header.Version != SupportedVersion {
		return invalid(StageIntegrity)
	}

	switch pkg.Header.Encoding {
	case ModeConfidential, ModePublic:
	default:
		return invalid(StageIntegrity)
	}

	if pkg.Header.Encoding != pkg.StructuralMode() {
		return invalid(StageIntegrity)
	}

	if pkg.Header.TemplateHash == "" || pkg.Header.PolicyHash == "" || pkg.Header.ContentHash == "" {
		return invalid(StageIntegrity)
	}

	if pkg.Signature.Algorithm == "" || len(pkg.Signature.Signature) == 0 {
		return invalid(StageIntegrity)
	}

	return valid(StageIntegrity)
}
