package draft

import (
	"context"
	"encoding/json"

	"github.com/jonathan/cv-studio/internal/types"
)

// rawEnvelope captures the top-level keys of the AI payload without trusting
// their shapes.
type rawEnvelope struct {
	Summary    json.RawMessage `json:"summary"`
	Experience json.RawMessage `json:"experience"`
	Education  json.RawMessage `json:"education"`
	Skills     json.RawMessage `json:"skills"`
	Languages  json.RawMessage `json:"languages"`
	Interests  json.RawMessage `json:"interests"`
}

// Reconcile merges an untrusted partial payload into a document seeded from
// user-entered facts. Seed fields always win; content fields are taken from
// the payload only when their shape matches (string for summary, list for the
// rest), else they degrade to empty. A nil or unparsable payload yields the
// seed-only document.
func Reconcile(seed types.BasicInfo, payload []byte) *types.CVDocument {
	doc := seed.SeedDocument()
	if len(payload) == 0 {
		return doc
	}

	var env rawEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return doc
	}

	var summary string
	if err := json.Unmarshal(env.Summary, &summary); err == nil {
		doc.Summary = summary
	}
	doc.Experience = decodeEntries[types.ExperienceEntry](env.Experience)
	doc.Education = decodeEntries[types.EducationEntry](env.Education)
	doc.Skills = decodeEntries[string](env.Skills)
	doc.Languages = decodeEntries[types.LanguageEntry](env.Languages)
	doc.Interests = decodeEntries[string](env.Interests)
	return doc
}

// decodeEntries decodes a raw list element by element. A value that is not a
// list yields an empty slice; elements that do not decode are skipped so one
// malformed item cannot discard the rest of the draft.
func decodeEntries[T any](raw json.RawMessage) []T {
	out := []T{}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return out
	}
	for _, element := range elements {
		var entry T
		if err := json.Unmarshal(element, &entry); err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Build runs one generation round trip and reconciles the result. It never
// fails out of the generating stage: on any error the returned document is
// the seed-only fallback and the error is returned solely so the caller can
// surface a notification.
func Build(ctx context.Context, gen Generator, seed types.BasicInfo, locale string) (*types.CVDocument, error) {
	if gen == nil {
		return Reconcile(seed, nil), &GenerationError{Message: "no generator configured"}
	}

	payload, err := gen.GenerateDraft(ctx, seed, locale)
	if err != nil {
		return Reconcile(seed, nil), &GenerationError{Message: "generator call failed", Cause: err}
	}
	if err := ValidateEnvelope(payload); err != nil {
		return Reconcile(seed, nil), &GenerationError{Message: "malformed response payload", Cause: err}
	}
	return Reconcile(seed, payload), nil
}
