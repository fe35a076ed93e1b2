// Package models defines client-side data models used by the jobtrack CLI.
package models

import (
	"fmt"

	"github.com/dkozyrev/jobtrack/internal/common"
)

// DocumentType classifies an attachment. The set is closed: each
// (profile, application) pair holds at most one attachment per type.
type DocumentType string

const (
	DocumentTypeResume    DocumentType = "resume"
	DocumentTypeCover     DocumentType = "cover"
	DocumentTypePortfolio DocumentType = "portfolio"
)

// DocumentTypes lists every valid document type.
var DocumentTypes = []DocumentType{DocumentTypeResume, DocumentTypeCover, DocumentTypePortfolio}

// ContentKindDefault is used when the MIME type of an upload is unknown.
const ContentKindDefault = "application/octet-stream"

// ParseDocumentType validates s against the closed document type set.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypeResume, DocumentTypeCover, DocumentTypePortfolio:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown document type %q", common.ErrInvalidKey, s)
	}
}

// Attachment is one stored file and its metadata.
//
// CompositeKey uniquely identifies the record; ApplicationKey and ProfileID
// are index projections derived from the record's own fields and are written
// only by the repository, never mutated independently.
type Attachment struct {
	// CompositeKey is derived from (ProfileID, ApplicationID, DocumentType).
	CompositeKey string

	// ApplicationKey is derived from (ProfileID, ApplicationID). Not unique:
	// multiple document types share one application key.
	ApplicationKey string

	// ProfileID is the owning profile.
	ProfileID string

	// ApplicationID is the owning application record. Existence is not
	// validated here; the application store owns that.
	ApplicationID string

	// DocumentType is one of the closed set {resume, cover, portfolio}.
	DocumentType DocumentType

	// DisplayName is the original filename, kept for UI and export naming.
	DisplayName string

	// ContentKind is the MIME type, ContentKindDefault if unknown.
	ContentKind string

	// UploadedAtMillis is the write-time timestamp, not user-editable.
	UploadedAtMillis int64

	// Payload is the file content, passed through unmodified.
	Payload []byte
}

// InputFile is a raw file handed to the attachment store by the UI layer.
type InputFile struct {
	DisplayName string
	ContentKind string
	Payload     []byte
}
