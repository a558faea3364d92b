package beap

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/beapkit/beap-go/internal/crypto"
)

// fixtureArtefact is the plaintext form of an artefact before sealing.
type fixtureArtefact struct {
	ref          string
	attachmentID string
	kind         ArtefactKind
	page         *int
	mimeType     string
	content      []byte
}

// fixture holds one honestly constructed package plus every secret a
// test needs to decrypt or re-sign it.
type fixture struct {
	pkg        *Package
	recipient  *RecipientKey
	senderPub  []byte
	signerPub  []byte
	signerPriv []byte
	handshake  string
}

func intPtr(v int) *int { return &v }

// newConfidentialFixture seals capsuleJSON and the given artefacts into
// a valid qBEAP package bound to handshake id "H1".
func newConfidentialFixture(t *testing.T, capsuleJSON []byte, arts []fixtureArtefact) *fixture {
	t.Helper()

	recipient, err := GenerateRecipientKey()
	if err != nil {
		t.Fatal(err)
	}
	sender, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	shared, err := sender.SharedSecret(recipient.PublicKey())
	if err != nil {
		t.Fatal(err)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatal(err)
	}

	keys, err := crypto.DeriveSessionKeys(shared, salt)
	if err != nil {
		t.Fatal(err)
	}

	nonce := make([]byte, crypto.AESNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		t.Fatal(err)
	}
	ciphertext, err := crypto.EncryptAESGCM(keys.CapsuleKey, nonce, capsuleJSON)
	if err != nil {
		t.Fatal(err)
	}

	encArts := make([]EncryptedArtefact, len(arts))
	for i, a := range arts {
		artNonce := make([]byte, crypto.AESNonceSize)
		if _, err := rand.Read(artNonce); err != nil {
			t.Fatal(err)
		}
		artCt, err := crypto.EncryptAESGCM(keys.ArtefactKey, artNonce, a.content)
		if err != nil {
			t.Fatal(err)
		}
		encArts[i] = EncryptedArtefact{
			Ref:           a.ref,
			AttachmentID:  a.attachmentID,
			Kind:          a.kind,
			Page:          a.page,
			MimeType:      a.mimeType,
			Nonce:         artNonce,
			Ciphertext:    artCt,
			PlaintextHash: crypto.Digest(a.content),
		}
	}

	f := &fixture{
		pkg: &Package{
			Header: Header{
				Version:      SupportedVersion,
				Encoding:     ModeConfidential,
				TemplateHash: "t",
				PolicyHash:   "p",
				ContentHash:  "c",
			},
			Content: &Confidential{
				Binding:   &ReceiverBinding{HandshakeID: "H1"},
				Salt:      salt,
				Payload:   EncryptedPayload{Nonce: nonce, Ciphertext: ciphertext},
				Artefacts: encArts,
			},
			Metadata: json.RawMessage(`{"caseId":"case-42"}`),
		},
		recipient: recipient,
		senderPub: sender.PublicKey,
		handshake: "H1",
	}
	f.sign(t)
	return f
}

// newPublicFixture wraps capsuleJSON and plaintext artefacts into a
// valid pBEAP package.
func newPublicFixture(t *testing.T, capsuleJSON []byte, arts []fixtureArtefact) *fixture {
	t.Helper()

	plainArts := make([]PlainArtefact, len(arts))
	for i, a := range arts {
		plainArts[i] = PlainArtefact{
			Ref:          a.ref,
			AttachmentID: a.attachmentID,
			Kind:         a.kind,
			Page:         a.page,
			MimeType:     a.mimeType,
			Content:      a.content,
			Hash:         crypto.Digest(a.content),
		}
	}

	f := &fixture{
		pkg: &Package{
			Header: Header{
				Version:      SupportedVersion,
				Encoding:     ModePublic,
				TemplateHash: "t",
				PolicyHash:   "p",
				ContentHash:  "c",
			},
			Content: &Public{
				Payload:   capsuleJSON,
				Artefacts: plainArts,
			},
			Metadata: json.RawMessage(`{"caseId":"case-42"}`),
		},
	}
	f.sign(t)
	return f
}

// sign (re-)signs the fixture package, generating the signer keypair on
// first use. Tests mutate the package and call sign again when they need
// the mutation covered by a fresh, valid signature.
func (f *fixture) sign(t *testing.T) {
	t.Helper()

	if f.signerPriv == nil {
		pub, priv, err := crypto.GenerateSigningKey(crypto.AlgEd25519)
		if err != nil {
			t.Fatal(err)
		}
		f.signerPub = pub
		f.signerPriv = priv
	}

	f.pkg.Signature = Signature{
		Algorithm:       crypto.AlgEd25519,
		KeyID:           "signer-1",
		SignerPublicKey: f.signerPub,
	}

	signingBytes, err := packageSigningBytes(f.pkg)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := crypto.Sign(crypto.AlgEd25519, f.signerPriv, signingBytes)
	if err != nil {
		t.Fatal(err)
	}
	f.pkg.Signature.Signature = sig
}

// options returns decrypt options matching the fixture's recipient.
func (f *fixture) options() *DecryptOptions {
	return &DecryptOptions{
		HandshakeID:     f.handshake,
		SenderPublicKey: f.senderPub,
		RecipientKey:    f.recipient,
	}
}

// wireJSON serializes the fixture package to the wire format, so tests
// can exercise the full parse-then-decrypt path.
func (f *fixture) wireJSON(t *testing.T) []byte {
	t.Helper()

	env := map[string]any{
		"header": map[string]any{
			"version":       f.pkg.Header.Version,
			"encoding":      string(f.pkg.Header.Encoding),
			"template_hash": f.pkg.Header.TemplateHash,
			"policy_hash":   f.pkg.Header.PolicyHash,
			"content_hash":  f.pkg.Header.ContentHash,
		},
		"signature": map[string]any{
			"algorithm": f.pkg.Signature.Algorithm,
			"keyId":     f.pkg.Signature.KeyID,
			"signature": crypto.ToBase64URL(f.pkg.Signature.Signature),
			"signer_pk": crypto.ToBase64URL(f.pkg.Signature.SignerPublicKey),
		},
		"metadata": json.RawMessage(f.pkg.Metadata),
	}
	header := env["header"].(map[string]any)

	switch c := f.pkg.Content.(type) {
	case *Confidential:
		if c.Binding != nil {
			header["receiver_binding"] = map[string]any{"handshake_id": c.Binding.HandshakeID}
		}
		header["crypto"] = map[string]any{"salt": crypto.ToBase64URL(c.Salt)}
		env["payloadEnc"] = map[string]any{
			"nonce":      crypto.ToBase64URL(c.Payload.Nonce),
			"ciphertext": crypto.ToBase64URL(c.Payload.Ciphertext),
		}
		arts := make([]map[string]any, len(c.Artefacts))
		for i, a := range c.Artefacts {
			arts[i] = map[string]any{
				"ref":           a.Ref,
				"attachmentId":  a.AttachmentID,
				"kind":          string(a.Kind),
				"mimeType":      a.MimeType,
				"nonce":         crypto.ToBase64URL(a.Nonce),
				"ciphertext":    crypto.ToBase64URL(a.Ciphertext),
				"plaintextHash": a.PlaintextHash,
			}
			if a.Page != nil {
				arts[i]["page"] = *a.Page
			}
		}
		env["artefactsEnc"] = arts

	case *Public:
		env["payload"] = crypto.ToBase64URL(c.Payload)
		arts := make([]map[string]any, len(c.Artefacts))
		for i, a := range c.Artefacts {
			arts[i] = map[string]any{
				"ref":          a.Ref,
				"attachmentId": a.AttachmentID,
				"kind":         string(a.Kind),
				"mimeType":     a.MimeType,
				"content":      crypto.ToBase64URL(a.Content),
				"hash":         a.Hash,
			}
			if a.Page != nil {
				arts[i]["page"] = *a.Page
			}
		}
		env["artefacts"] = arts
	}

	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

// recordingDiagnostics captures what the pipeline reports to the
// operator channel so tests can assert stage ordering.
type recordingDiagnostics struct {
	failures    []Stage
	notEligible int
}

func (d *recordingDiagnostics) Failure(stage Stage, _ error) {
	d.failures = append(d.failures, stage)
}

func (d *recordingDiagnostics) NotEligible() {
	d.notEligible++
}
