package draft

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// envelopeSchema is deliberately permissive about field shapes: the
// reconciler tolerates wrong-typed fields on its own. The schema only rejects
// responses whose top level is not a JSON object, which counts as a malformed
// response per the failure semantics.
const envelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {},
    "experience": {},
    "education": {},
    "skills": {},
    "languages": {},
    "interests": {}
  }
}`

// EnvelopeError represents a draft payload that failed the envelope check.
type EnvelopeError struct {
	Errors []string
}

func (e *EnvelopeError) Error() string {
	var sb strings.Builder
	sb.WriteString("draft envelope invalid:")
	for _, msg := range e.Errors {
		sb.WriteString(" ")
		sb.WriteString(msg)
	}
	return sb.String()
}

// ValidateEnvelope checks that the raw payload is a JSON object at the top
// level.
func ValidateEnvelope(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(envelopeSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("envelope check failed during load: %w", err)
	}
	if result.Valid() {
		return nil
	}

	envErr := &EnvelopeError{Errors: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		envErr.Errors = append(envErr.Errors, desc.String())
	}
	return envErr
}
