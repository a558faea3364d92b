package beap

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/beapkit/beap-go/internal/crypto"
)

// Decrypt runs the staged disclosure pipeline over a parsed package:
//
//	integrity → (confidential: eligibility) → signature →
//	(confidential: key derivation → capsule decrypt → artefact decrypt) →
//	result assembly
//
// Stages run strictly in order; no stage executes before its predecessor
// succeeds, and only this orchestrator short-circuits. Every failure
// before the decryption attempt surfaces the identical message, and an
// ineligible recipient is a distinct terminal outcome, not an error.
// Internal causes go to the options' Diagnostics channel only.
//
// Derived keys and plaintext are owned by this call; nothing is cached
// or retained across invocations.
func Decrypt(pkg *Package, opts *DecryptOptions) *DecryptionResult {
	if opts == nil {
		opts = &DecryptOptions{}
	}
	diags := opts.Diagnostics
	if diags == nil {
		diags = DiscardDiagnostics()
	}

	fail := func(kind failureKind, stage Stage, err error) *DecryptionResult {
		diags.Failure(stage, fmt.Errorf("%s: %w", kind, err))
		return &DecryptionResult{Outcome: OutcomeRejected, Message: externalMessage(kind)}
	}

	if pkg == nil || pkg.Content == nil {
		return fail(kindMalformedTransport, StageParse, errors.New("nil package"))
	}

	if res := VerifyIntegrity(pkg); !res.Valid {
		return fail(kindIntegrityViolation, StageIntegrity, errors.New("integrity check failed"))
	}

	switch c := pkg.Content.(type) {
	case *Confidential:
		return decryptConfidential(pkg, c, opts, diags, fail)
	case *Public:
		return disclosePublic(pkg, c, opts, fail)
	default:
		return fail(kindMalformedTransport, StageParse, fmt.Errorf("unknown content variant %T", pkg.Content))
	}
}

type failFunc func(kind failureKind, stage Stage, err error) *DecryptionResult

func decryptConfidential(pkg *Package, c *Confidential, opts *DecryptOptions, diags Diagnostics, fail failFunc) *DecryptionResult {
	// Required caller inputs. Absence is a rejection with the uniform
	// message, not a distinct error.
	if opts.HandshakeID == "" || len(opts.SenderPublicKey) == 0 || opts.RecipientKey == nil {
		return fail(kindMissingKeyAgreementInput, StageEligibility, errors.New("missing key agreement input"))
	}

	if !Eligible(pkg, opts.HandshakeID) {
		diags.NotEligible()
		return &DecryptionResult{Outcome: OutcomeNotForRecipient, Message: MsgNotForRecipient}
	}

	summary, res := runSignatureStage(pkg, opts, fail)
	if res != nil {
		return res
	}

	shared, err := opts.RecipientKey.kp.SharedSecret(opts.SenderPublicKey)
	if err != nil {
		return fail(kindKeyAgreementFailure, StageKeys, err)
	}

	keys, err := crypto.DeriveSessionKeys(shared, c.Salt)
	if err != nil {
		return fail(kindKeyAgreementFailure, StageKeys, err)
	}

	capsulePlain, err := crypto.DecryptAESGCM(keys.CapsuleKey, c.Payload.Nonce, c.Payload.Ciphertext)
	if err != nil {
		return fail(kindCapsuleDecryptionFailure, StageCapsule, err)
	}

	capsule, err := parseCapsule(capsulePlain)
	if err != nil {
		return fail(kindCapsuleMalformed, StageCapsule, err)
	}

	artefacts, err := decryptArtefacts(keys.ArtefactKey, c.Artefacts)
	if err != nil {
		return fail(kindArtefactDecryptionFailure, StageArtefacts, err)
	}

	return assembled(pkg, capsule, artefacts, summary)
}

func disclosePublic(pkg *Package, c *Public, opts *DecryptOptions, fail failFunc) *DecryptionResult {
	summary, res := runSignatureStage(pkg, opts, fail)
	if res != nil {
		return res
	}

	capsule, err := parseCapsule(c.Payload)
	if err != nil {
		return fail(kindCapsuleMalformed, StageCapsule, err)
	}

	// Public artefacts are already plaintext; map them through with
	// their declared metadata unchanged.
	artefacts := make([]DecryptedArtefact, len(c.Artefacts))
	for i, a := range c.Artefacts {
		artefacts[i] = DecryptedArtefact{
			Ref:          a.Ref,
			AttachmentID: a.AttachmentID,
			Kind:         a.Kind,
			Page:         a.Page,
			MimeType:     a.MimeType,
			Content:      a.Content,
			ContentHash:  a.Hash,
			Width:        a.Width,
			Height:       a.Height,
			Length:       len(a.Content),
		}
	}

	return assembled(pkg, capsule, artefacts, summary)
}

// runSignatureStage verifies the envelope signature unless the caller
// opted out. It returns the verification summary on success, or a
// terminal result on failure.
func runSignatureStage(pkg *Package, opts *DecryptOptions, fail failFunc) (VerificationSummary, *DecryptionResult) {
	summary := VerificationSummary{
		Algorithm:  pkg.Signature.Algorithm,
		KeyID:      pkg.Signature.KeyID,
		VerifiedAt: time.Now().UTC(),
	}

	if opts.SkipSignatureVerification {
		summary.Skipped = true
		return summary, nil
	}

	res, cause := VerifyPackageSignature(pkg, opts.SignerPublicKeys[pkg.Signature.KeyID])
	if !res.Valid {
		return summary, fail(kindSignatureInvalid, StageSignature, cause)
	}

	summary.SignatureVerified = true
	return summary, nil
}

// decryptArtefacts decrypts each artefact independently with the shared
// artefact key. Artefacts have no ordering requirements among
// themselves, so they decrypt concurrently; all of them are attempted
// before any failure is reported, and failures aggregate so the
// diagnostic names every bad artefact rather than the first.
func decryptArtefacts(artefactKey []byte, artefacts []EncryptedArtefact) ([]DecryptedArtefact, error) {
	out := make([]DecryptedArtefact, len(artefacts))
	errs := make([]error, len(artefacts))

	var wg sync.WaitGroup
	for i := range artefacts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], errs[i] = decryptArtefact(artefactKey, &artefacts[i])
		}(i)
	}
	wg.Wait()

	var agg *multierror.Error
	for i, err := range errs {
		if err != nil {
			agg = multierror.Append(agg, fmt.Errorf("artefact %q: %w", artefacts[i].Ref, err))
		}
	}
	if err := agg.ErrorOrNil(); err != nil {
		return nil, err
	}

	return out, nil
}

func decryptArtefact(artefactKey []byte, a *EncryptedArtefact) (DecryptedArtefact, error) {
	plaintext, err := crypto.DecryptAESGCM(artefactKey, a.Nonce, a.Ciphertext)
	if err != nil {
		return DecryptedArtefact{}, err
	}

	// The declared hash is bound by the signature; the decrypted bytes
	// must commit to it.
	contentHash := crypto.Digest(plaintext)
	if a.PlaintextHash != "" && contentHash != a.PlaintextHash {
		return DecryptedArtefact{}, fmt.Errorf("content hash mismatch for artefact %q", a.Ref)
	}

	return DecryptedArtefact{
		Ref:          a.Ref,
		AttachmentID: a.AttachmentID,
		Kind:         a.Kind,
		Page:         a.Page,
		MimeType:     a.MimeType,
		Content:      plaintext,
		ContentHash:  contentHash,
		Width:        a.Width,
		Height:       a.Height,
		Length:       len(plaintext),
	}, nil
}

func assembled(pkg *Package, capsule *Capsule, artefacts []DecryptedArtefact, summary VerificationSummary) *DecryptionResult {
	return &DecryptionResult{
		Outcome: OutcomeDecrypted,
		Package: &DecryptedPackage{
			Header:       pkg.Header,
			Capsule:      *capsule,
			Artefacts:    artefacts,
			Metadata:     pkg.Metadata,
			Verification: summary,
		},
	}
}
