package infer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/castorhq/castor/jsonschema"
)

var (
	uriRe   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^\s]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// DetectFormat guesses a semantic format tag for a string value. Rules run
// top to bottom, first match wins. A miss is always safe, so every rule
// favors precision over recall.
func DetectFormat(s string) jsonschema.Format {
	if looksLikeUUID(s) {
		return jsonschema.FormatUUID
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return jsonschema.FormatDateTime
	}
	if uriRe.MatchString(s) || strings.HasPrefix(s, "mailto:") {
		return jsonschema.FormatURI
	}
	if emailRe.MatchString(s) {
		return jsonschema.FormatEmail
	}
	return jsonschema.FormatNone
}

func looksLikeUUID(s string) bool {
	// uuid.Parse also accepts urn:, braced and undashed spellings; only the
	// canonical 8-4-4-4-12 form should get the tag
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
