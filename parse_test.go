package beap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfidentialWire = `{
	"header": {
		"version": "1.0",
		"encoding": "qbeap",
		"template_hash": "t", "policy_hash": "p", "content_hash": "c",
		"receiver_binding": {"handshake_id": "H1"},
		"crypto": {"salt": "c2FsdC12YWx1ZQ"}
	},
	"signature": {"algorithm": "ed25519", "keyId": "k1", "signature": "c2ln", "signer_pk": "cGs"},
	"payloadEnc": {"nonce": "bm9uY2UxMjM0NTY", "ciphertext": "Y2lwaGVydGV4dA"},
	"artefactsEnc": [{"ref": "art-1", "attachmentId": "att-1", "kind": "raster", "page": 2,
		"mimeType": "image/png", "nonce": "bm9uY2UxMjM0NTY", "ciphertext": "Y3Q", "plaintextHash": "aGFzaA"}],
	"metadata": {"caseId": "case-7"}
}`

const validPublicWire = `{
	"header": {"version": "1.0", "encoding": "pbeap",
		"template_hash": "t", "policy_hash": "p", "content_hash": "c"},
	"signature": {"algorithm": "ed25519", "keyId": "k1", "signature": "c2ln", "signer_pk": "cGs"},
	"payload": "eyJzdWJqZWN0IjoiaGkifQ",
	"artefacts": [{"ref": "art-1", "attachmentId": "att-1", "kind": "original",
		"mimeType": "text/plain", "content": "aGVsbG8", "hash": "aGFzaA"}],
	"metadata": {}
}`

func TestParsePackage_Confidential(t *testing.T) {
	t.Parallel()
	pkg, err := ParsePackage([]byte(validConfidentialWire))
	require.NoError(t, err)

	assert.Equal(t, "1.0", pkg.Header.Version)
	assert.Equal(t, ModeConfidential, pkg.Header.Encoding)
	assert.Equal(t, ModeConfidential, pkg.StructuralMode())
	assert.Equal(t, "t", pkg.Header.TemplateHash)

	c, ok := pkg.Content.(*Confidential)
	require.True(t, ok)
	require.NotNil(t, c.Binding)
	assert.Equal(t, "H1", c.Binding.HandshakeID)
	assert.Equal(t, []byte("salt-value"), c.Salt)
	assert.Equal(t, []byte("ciphertext"), c.Payload.Ciphertext)

	require.Len(t, c.Artefacts, 1)
	assert.Equal(t, "art-1", c.Artefacts[0].Ref)
	assert.Equal(t, ArtefactRaster, c.Artefacts[0].Kind)
	require.NotNil(t, c.Artefacts[0].Page)
	assert.Equal(t, 2, *c.Artefacts[0].Page)

	assert.Equal(t, "ed25519", pkg.Signature.Algorithm)
	assert.Equal(t, "k1", pkg.Signature.KeyID)
	assert.JSONEq(t, `{"caseId":"case-7"}`, string(pkg.Metadata))
}

func TestParsePackage_Public(t *testing.T) {
	t.Parallel()
	pkg, err := ParsePackage([]byte(validPublicWire))
	require.NoError(t, err)

	assert.Equal(t, ModePublic, pkg.StructuralMode())

	p, ok := pkg.Content.(*Public)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"subject":"hi"}`), p.Payload)
	require.Len(t, p.Artefacts, 1)
	assert.Equal(t, []byte("hello"), p.Artefacts[0].Content)
	assert.Nil(t, p.Artefacts[0].Page)
}

func TestParsePackage_Malformed(t *testing.T) {
	t.Parallel()

	mutate := func(remove ...string) string {
		var env map[string]json.RawMessage
		if err := json.Unmarshal([]byte(validConfidentialWire), &env); err != nil {
			t.Fatal(err)
		}
		for _, k := range remove {
			delete(env, k)
		}
		out, err := json.Marshal(env)
		if err != nil {
			t.Fatal(err)
		}
		return string(out)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not a package"},
		{"empty", ""},
		{"json array", "[1,2,3]"},
		{"missing header", mutate("header")},
		{"missing signature", mutate("signature")},
		{"missing metadata", mutate("metadata")},
		{"no payload variant", mutate("payloadEnc")},
		{"both payload variants", func() string {
			var env map[string]json.RawMessage
			if err := json.Unmarshal([]byte(validConfidentialWire), &env); err != nil {
				t.Fatal(err)
			}
			env["payload"] = json.RawMessage(`"cGxhaW4"`)
			out, _ := json.Marshal(env)
			return string(out)
		}()},
		{"plain artefacts with encrypted payload", func() string {
			var env map[string]json.RawMessage
			if err := json.Unmarshal([]byte(validConfidentialWire), &env); err != nil {
				t.Fatal(err)
			}
			env["artefacts"] = json.RawMessage(`[]`)
			out, _ := json.Marshal(env)
			return string(out)
		}()},
		{"bad base64 in payload", `{
			"header": {"version":"1.0","encoding":"qbeap","template_hash":"t","policy_hash":"p","content_hash":"c"},
			"signature": {"algorithm":"ed25519","keyId":"k1","signature":"c2ln","signer_pk":"cGs"},
			"payloadEnc": {"nonce":"!!!not-base64!!!","ciphertext":"Y3Q"},
			"metadata": {}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := ParsePackage([]byte(tt.raw))
			assert.Nil(t, pkg)
			// Always the same coarse error, never the specific defect.
			assert.ErrorIs(t, err, ErrMalformedPackage)
		})
	}
}

func TestParsePackage_DoesNotJudgeSemantics(t *testing.T) {
	t.Parallel()

	// Semantically wrong but structurally fine: wrong version, unknown
	// encoding, empty hashes. The parser accepts all of it; the
	// integrity stage owns those checks.
	raw := `{
		"header": {"version": "9.9", "encoding": "weird", "template_hash": "", "policy_hash": "", "content_hash": ""},
		"signature": {"algorithm": "", "keyId": "", "signature": "", "signer_pk": ""},
		"payload": "e30",
		"metadata": {}
	}`

	pkg, err := ParsePackage([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "9.9", pkg.Header.Version)
	assert.False(t, VerifyIntegrity(pkg).Valid)
}
