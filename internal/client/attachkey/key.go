// Package attachkey builds storage keys for the attachment store.
//
// An attachment's primary identity is its composite key, derived from the
// (profileID, applicationID, documentType) triple; the application key,
// derived from (profileID, applicationID), scopes the application-level
// secondary index. Both are pure string derivations with no I/O.
//
// Segments are escaped before joining, so two distinct triples can never
// produce the same key even when an identifier contains the separator
// character. Plain concatenation would make "a/b"+"c" collide with
// "a"+"b/c".
package attachkey

import (
	"fmt"
	"strings"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
)

const separator = "/"

var segmentEscaper = strings.NewReplacer(`\`, `\\`, separator, `\`+separator)

func escape(segment string) string {
	return segmentEscaper.Replace(segment)
}

// Composite returns the unique storage key for one attachment record.
// Fails with ErrInvalidKey on an empty profile or application id, or on a
// document type outside the closed set.
func Composite(profileID, applicationID string, docType models.DocumentType) (string, error) {
	appKey, err := Application(profileID, applicationID)
	if err != nil {
		return "", err
	}
	if _, err := models.ParseDocumentType(string(docType)); err != nil {
		return "", err
	}
	return appKey + separator + escape(string(docType)), nil
}

// Application returns the application-scoped index key shared by all
// document types of one (profile, application) pair.
func Application(profileID, applicationID string) (string, error) {
	if profileID == "" {
		return "", fmt.Errorf("%w: empty profile id", common.ErrInvalidKey)
	}
	if applicationID == "" {
		return "", fmt.Errorf("%w: empty application id", common.ErrInvalidKey)
	}
	return escape(profileID) + separator + escape(applicationID), nil
}
