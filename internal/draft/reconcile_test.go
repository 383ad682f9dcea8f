package draft

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

func testSeed() types.BasicInfo {
	return types.BasicInfo{
		Name:  "Marie Curie",
		Title: "Physicienne",
		Email: "marie@sorbonne.fr",
	}
}

func TestReconcile(t *testing.T) {
	t.Run("seed fields always win", func(t *testing.T) {
		payload := []byte(`{
			"name": "Somebody Else",
			"title": "Intruder",
			"email": "fake@example.com",
			"summary": "Pionnière de la radioactivité."
		}`)
		doc := Reconcile(testSeed(), payload)
		assert.Equal(t, "Marie Curie", doc.Name)
		assert.Equal(t, "Physicienne", doc.Title)
		assert.Equal(t, "marie@sorbonne.fr", doc.Email)
		assert.Equal(t, "Pionnière de la radioactivité.", doc.Summary)
	})

	t.Run("nil payload yields the seed-only document", func(t *testing.T) {
		doc := Reconcile(testSeed(), nil)
		assert.Equal(t, "Marie Curie", doc.Name)
		assert.Empty(t, doc.Summary)
		assert.Empty(t, doc.Experience)
		assert.NotNil(t, doc.Skills)
	})

	t.Run("wrong-typed summary degrades to empty", func(t *testing.T) {
		doc := Reconcile(testSeed(), []byte(`{"summary": 42}`))
		assert.Empty(t, doc.Summary)
	})

	t.Run("wrong-typed list degrades to empty", func(t *testing.T) {
		doc := Reconcile(testSeed(), []byte(`{"skills": "Physique"}`))
		assert.NotNil(t, doc.Skills)
		assert.Empty(t, doc.Skills)
	})

	t.Run("malformed elements are skipped, not fatal", func(t *testing.T) {
		payload := []byte(`{
			"experience": [
				{"company":"Sorbonne","position":"Professeure"},
				17,
				{"company":"Institut du Radium","title":"Directrice"}
			],
			"skills": ["Physique", {"bad": true}, "Chimie"]
		}`)
		doc := Reconcile(testSeed(), payload)
		require.Len(t, doc.Experience, 2)
		assert.Equal(t, "Professeure", doc.Experience[0].Position)
		assert.Equal(t, "Directrice", doc.Experience[1].Position, "alias migration applies to drafts too")
		assert.Equal(t, []string{"Physique", "Chimie"}, doc.Skills)
	})

	t.Run("language levels are normalized", func(t *testing.T) {
		payload := []byte(`{"languages": ["Polonais", {"name":"Français","level":"natif"}]}`)
		doc := Reconcile(testSeed(), payload)
		require.Len(t, doc.Languages, 2)
		assert.Equal(t, types.LevelIntermediate, doc.Languages[0].Level)
		assert.Equal(t, types.LevelNative, doc.Languages[1].Level)
	})
}

func TestValidateEnvelope(t *testing.T) {
	t.Run("object payload passes", func(t *testing.T) {
		assert.NoError(t, ValidateEnvelope([]byte(`{"summary":"ok"}`)))
	})

	t.Run("array payload fails", func(t *testing.T) {
		err := ValidateEnvelope([]byte(`["not","an","object"]`))
		var envErr *EnvelopeError
		assert.ErrorAs(t, err, &envErr)
	})

	t.Run("non-JSON payload fails", func(t *testing.T) {
		assert.Error(t, ValidateEnvelope([]byte(`Voici votre CV:`)))
	})
}

// fakeGenerator returns a fixed payload or error.
type fakeGenerator struct {
	payload []byte
	err     error
}

func (f *fakeGenerator) GenerateDraft(_ context.Context, _ types.BasicInfo, _ string) ([]byte, error) {
	return f.payload, f.err
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("successful generation", func(t *testing.T) {
		gen := &fakeGenerator{payload: []byte(`{"summary":"Pionnière."}`)}
		doc, err := Build(ctx, gen, testSeed(), "fr")
		require.NoError(t, err)
		assert.Equal(t, "Pionnière.", doc.Summary)
		assert.Equal(t, "Marie Curie", doc.Name)
	})

	t.Run("generator failure falls back to seed", func(t *testing.T) {
		gen := &fakeGenerator{err: fmt.Errorf("quota exhausted")}
		doc, err := Build(ctx, gen, testSeed(), "fr")

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.ErrorContains(t, genErr.Cause, "quota exhausted")
		assert.Equal(t, "Marie Curie", doc.Name, "document is still usable")
		assert.Empty(t, doc.Summary)
	})

	t.Run("malformed payload falls back to seed", func(t *testing.T) {
		gen := &fakeGenerator{payload: []byte(`[1,2,3]`)}
		doc, err := Build(ctx, gen, testSeed(), "fr")

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "Marie Curie", doc.Name)
	})

	t.Run("nil generator falls back to seed", func(t *testing.T) {
		doc, err := Build(ctx, nil, testSeed(), "fr")
		require.Error(t, err)
		assert.Equal(t, "Marie Curie", doc.Name)
	})
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock(`{"a":1}`))
}

func TestBuildDraftPrompt(t *testing.T) {
	fr := BuildDraftPrompt(testSeed(), "fr")
	assert.Contains(t, fr, "Marie Curie")
	assert.Contains(t, fr, "Physicienne")

	en := BuildDraftPrompt(testSeed(), "en")
	assert.Contains(t, en, "Marie Curie")
	assert.NotEqual(t, fr, en)
}
