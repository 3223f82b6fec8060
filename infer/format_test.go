package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/castorhq/castor/jsonschema"
)

func TestDetectFormatUUID(t *testing.T) {
	assert.Equal(t, jsonschema.FormatUUID, DetectFormat("3fa85f64-5717-4562-b3fc-2c963f66afa6"))
	assert.Equal(t, jsonschema.FormatUUID, DetectFormat("00000000-0000-0000-0000-000000000000"))
}

func TestDetectFormatUUIDOnlyCanonical(t *testing.T) {
	// other spellings uuid.Parse would accept should not get the tag
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("3fa85f6457174562b3fc2c963f66afa6"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("urn:uuid:3fa85f64-5717-4562-b3fc-2c963f66afa6"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("{3fa85f64-5717-4562-b3fc-2c963f66afa6}"))
}

func TestDetectFormatDateTime(t *testing.T) {
	assert.Equal(t, jsonschema.FormatDateTime, DetectFormat("2023-10-01T12:00:00Z"))
	assert.Equal(t, jsonschema.FormatDateTime, DetectFormat("2023-10-01T12:00:00+02:00"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("2023-10-01"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("12:00:00"))
}

func TestDetectFormatURI(t *testing.T) {
	assert.Equal(t, jsonschema.FormatURI, DetectFormat("http://example.com/a/b?c=d"))
	assert.Equal(t, jsonschema.FormatURI, DetectFormat("postgres://db.internal:5432/main"))
	assert.Equal(t, jsonschema.FormatURI, DetectFormat("mailto:ops@example.com"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("not-a-uri"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("example.com/missing-scheme"))
}

func TestDetectFormatEmail(t *testing.T) {
	assert.Equal(t, jsonschema.FormatEmail, DetectFormat("ops@example.com"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("ops@localhost"))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("two words@example.com"))
}

func TestDetectFormatPlain(t *testing.T) {
	assert.Equal(t, jsonschema.FormatNone, DetectFormat(""))
	assert.Equal(t, jsonschema.FormatNone, DetectFormat("hello"))
}
