package beap

import (
	"encoding/json"
	"fmt"

	"github.com/beapkit/beap-go/internal/crypto"
)

// Capsule is the single structured plaintext document carried by a
// package.
type Capsule struct {
	// Subject is the capsule subject line.
	Subject string `json:"subject"`
	// Body is the capsule body text.
	Body string `json:"body"`
	// Attachments describes the capsule's attachments.
	Attachments []AttachmentDescriptor `json:"attachments"`
}

// AttachmentDescriptor describes one attachment of a capsule. Small
// attachments may carry their extracted content inline; larger ones
// reference a separately decrypted artefact.
type AttachmentDescriptor struct {
	// ID is the attachment identifier.
	ID string `json:"id"`
	// Name is the original filename.
	Name string `json:"name"`
	// Size is the original size in bytes.
	Size int `json:"size"`
	// MimeType is the original MIME type.
	MimeType string `json:"mimeType"`
	// Content is inlined extracted content, if any (base64 on the wire).
	Content crypto.Base64Bytes `json:"content,omitempty"`
	// ArtefactRef references the artefact carrying this attachment's
	// bytes, if not inlined.
	ArtefactRef string `json:"artefactRef,omitempty"`
}

// parseCapsule parses decrypted (or public-mode plaintext) capsule bytes
// into a Capsule. This runs strictly after authenticated decryption, so
// a structural failure here is the one case allowed its own message.
func parseCapsule(plaintext []byte) (*Capsule, error) {
	var capsule Capsule
	if err := json.Unmarshal(plaintext, &capsule); err != nil {
		return nil, fmt.Errorf("parse capsule document: %w", err)
	}

	for i, a := range capsule.Attachments {
		if a.ID == "" {
			return nil, fmt.Errorf("capsule attachment %d has no id", i)
		}
	}

	return &capsule, nil
}
