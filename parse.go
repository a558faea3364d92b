package beap

import (
	"encoding/json"
	"fmt"

	"github.com/beapkit/beap-go/internal/crypto"
)

// wirePackage mirrors the JSON envelope framing. Section bodies stay raw
// so presence can be checked before any field is interpreted.
type wirePackage struct {
	Header       json.RawMessage `json:"header"`
	Signature    json.RawMessage `json:"signature"`
	Payload      *string         `json:"payload"`
	PayloadEnc   json.RawMessage `json:"payloadEnc"`
	Artefacts    json.RawMessage `json:"artefacts"`
	ArtefactsEnc json.RawMessage `json:"artefactsEnc"`
	Metadata     json.RawMessage `json:"metadata"`
}

type wireHeader struct {
	Version         string `json:"version"`
	Encoding        string `json:"encoding"`
	TemplateHash    string `json:"template_hash"`
	PolicyHash      string `json:"policy_hash"`
	ContentHash     string `json:"content_hash"`
	ReceiverBinding *struct {
		HandshakeID string `json:"handshake_id"`
	} `json:"receiver_binding"`
	Crypto *struct {
		Salt crypto.Base64Bytes `json:"salt"`
	} `json:"crypto"`
}

type wireSignature struct {
	Algorithm string             `json:"algorithm"`
	KeyID     string             `json:"keyId"`
	Signature crypto.Base64Bytes `json:"signature"`
	SignerPK  crypto.Base64Bytes `json:"signer_pk"`
}

type wireEncryptedPayload struct {
	Nonce      crypto.Base64Bytes `json:"nonce"`
	Ciphertext crypto.Base64Bytes `json:"ciphertext"`
}

type wireEncryptedArtefact struct {
	Ref           string             `json:"ref"`
	AttachmentID  string             `json:"attachmentId"`
	Kind          string             `json:"kind"`
	Page          *int               `json:"page"`
	MimeType      string             `json:"mimeType"`
	Nonce         crypto.Base64Bytes `json:"nonce"`
	Ciphertext    crypto.Base64Bytes `json:"ciphertext"`
	PlaintextHash string             `json:"plaintextHash"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
}

type wirePlainArtefact struct {
	Ref          string             `json:"ref"`
	AttachmentID string             `json:"attachmentId"`
	Kind         string             `json:"kind"`
	Page         *int               `json:"page"`
	MimeType     string             `json:"mimeType"`
	Content      crypto.Base64Bytes `json:"content"`
	Hash         string             `json:"hash"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
}

// ParsePackage turns raw envelope bytes into a [Package]. Only structural
// framing is checked: the top-level object exists, the header, signature,
// and metadata sections are present, and exactly one payload variant is
// carried. Hash values, the signature, and the declared encoding mode are
// not interpreted here; those are semantic checks owned by later stages.
//
// Every structural defect maps to [ErrMalformedPackage]. The parser is
// deliberately coarse about what went wrong.
func ParsePackage(data []byte) (*Package, error) {
	var wire wirePackage
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}

	if !sectionPresent(wire.Header) || !sectionPresent(wire.Signature) || !sectionPresent(wire.Metadata) {
		return nil, ErrMalformedPackage
	}

	var hdr wireHeader
	if err := json.Unmarshal(wire.Header, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}

	var sig wireSignature
	if err := json.Unmarshal(wire.Signature, &sig); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}

	// The content variant follows from which payload section exists on
	// the wire, never from the encoding enum.
	hasPlain := wire.Payload != nil
	hasEnc := sectionPresent(wire.PayloadEnc)
	if hasPlain == hasEnc {
		return nil, ErrMalformedPackage
	}

	var content Content
	if hasEnc {
		c, err := parseConfidential(&hdr, wire.PayloadEnc, wire.ArtefactsEnc)
		if err != nil {
			return nil, err
		}
		if sectionPresent(wire.Artefacts) {
			return nil, ErrMalformedPackage
		}
		content = c
	} else {
		c, err := parsePublic(*wire.Payload, wire.Artefacts)
		if err != nil {
			return nil, err
		}
		if sectionPresent(wire.ArtefactsEnc) {
			return nil, ErrMalformedPackage
		}
		content = c
	}

	return &Package{
		Header: Header{
			Version:      hdr.Version,
			Encoding:     Mode(hdr.Encoding),
			TemplateHash: hdr.TemplateHash,
			PolicyHash:   hdr.PolicyHash,
			ContentHash:  hdr.ContentHash,
		},
		Signature: Signature{
			Algorithm:       sig.Algorithm,
			KeyID:           sig.KeyID,
			Signature:       sig.Signature,
			SignerPublicKey: sig.SignerPK,
		},
		Content:  content,
		Metadata: wire.Metadata,
	}, nil
}

func parseConfidential(hdr *wireHeader, payloadEnc, artefactsEnc json.RawMessage) (*Confidential, error) {
	var payload wireEncryptedPayload
	if err := json.Unmarshal(payloadEnc, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}

	var wireArtefacts []wireEncryptedArtefact
	if sectionPresent(artefactsEnc) {
		if err := json.Unmarshal(artefactsEnc, &wireArtefacts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
		}
	}

	artefacts := make([]EncryptedArtefact, len(wireArtefacts))
	for i, a := range wireArtefacts {
		artefacts[i] = EncryptedArtefact{
			Ref:           a.Ref,
			AttachmentID:  a.AttachmentID,
			Kind:          ArtefactKind(a.Kind),
			Page:          a.Page,
			MimeType:      a.MimeType,
			Nonce:         a.Nonce,
			Ciphertext:    a.Ciphertext,
			PlaintextHash: a.PlaintextHash,
			Width:         a.Width,
			Height:        a.Height,
		}
	}

	c := &Confidential{
		Payload: EncryptedPayload{
			Nonce:      payload.Nonce,
			Ciphertext: payload.Ciphertext,
		},
		Artefacts: artefacts,
	}
	if hdr.ReceiverBinding != nil {
		c.Binding = &ReceiverBinding{HandshakeID: hdr.ReceiverBinding.HandshakeID}
	}
	if hdr.Crypto != nil {
		c.Salt = hdr.Crypto.Salt
	}

	return c, nil
}

func parsePublic(payloadB64 string, artefactsRaw json.RawMessage) (*Public, error) {
	payload, err := crypto.DecodeBase64(payloadB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}

	var wireArtefacts []wirePlainArtefact
	if sectionPresent(artefactsRaw) {
		if err := json.Unmarshal(artefactsRaw, &wireArtefacts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
		}
	}

	artefacts := make([]PlainArtefact, len(wireArtefacts))
	for i, a := range wireArtefacts {
		artefacts[i] = PlainArtefact{
			Ref:          a.Ref,
			AttachmentID: a.AttachmentID,
			Kind:         ArtefactKind(a.Kind),
			Page:         a.Page,
			MimeType:     a.MimeType,
			Content:      a.Content,
			Hash:         a.Hash,
			Width:        a.Width,
			Height:       a.Height,
		}
	}

	return &Public{Payload: payload, Artefacts: artefacts}, nil
}

// sectionPresent reports whether a raw JSON section exists and is not
// the literal null.
func sectionPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
