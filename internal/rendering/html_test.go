package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

func sampleDocument() *types.CVDocument {
	doc := types.NewDocument()
	doc.Name = "Marie Curie"
	doc.Title = "Physicienne"
	doc.Email = "marie@sorbonne.fr"
	doc.Summary = "Pionnière de la radioactivité."
	doc.Experience = []types.ExperienceEntry{
		{Company: "Sorbonne", Position: "Professeure", Period: "1906-1934", Description: "Première femme professeure."},
	}
	doc.Education = []types.EducationEntry{
		{School: "ESPCI", Degree: "Licence de physique", Period: "1893"},
	}
	doc.Skills = []string{"Physique", "Chimie"}
	doc.Languages = []types.LanguageEntry{{Name: "Polonais", Level: types.LevelNative}}
	doc.Interests = []string{"Recherche"}
	return doc
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, 3, TemplateCount())
	assert.Equal(t, 16, PaletteCount())
	assert.Len(t, Templates(), TemplateCount())
	assert.Len(t, Palette(), PaletteCount())

	t.Run("default accent is violet", func(t *testing.T) {
		color, err := ColorAt(0)
		require.NoError(t, err)
		assert.Equal(t, "#8B5CF6", color.Hex)
	})

	t.Run("out of range color", func(t *testing.T) {
		_, err := ColorAt(16)
		var selErr *SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, "color", selErr.Kind)
	})

	t.Run("registries return copies", func(t *testing.T) {
		Templates()[0].Name = "mutated"
		assert.Equal(t, "Classique", Templates()[0].Name)
	})
}

func TestRenderHTML(t *testing.T) {
	doc := sampleDocument()

	t.Run("every layout renders", func(t *testing.T) {
		for i := 0; i < TemplateCount(); i++ {
			html, err := RenderHTML(doc, i, 0)
			require.NoError(t, err, "layout %d", i)
			assert.Contains(t, html, "Marie Curie")
			assert.Contains(t, html, "Professeure")
			assert.Contains(t, html, "#8B5CF6")
		}
	})

	t.Run("accent color flows into the page", func(t *testing.T) {
		html, err := RenderHTML(doc, 0, 2)
		require.NoError(t, err)
		assert.Contains(t, html, "#10B981")
	})

	t.Run("field content is escaped", func(t *testing.T) {
		hostile := sampleDocument()
		hostile.Name = `<script>alert("x")</script>`
		html, err := RenderHTML(hostile, 0, 0)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert")
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		empty := types.NewDocument()
		empty.Name = "Marie Curie"
		html, err := RenderHTML(empty, 0, 0)
		require.NoError(t, err)
		assert.NotContains(t, html, "Langues")
		assert.NotContains(t, html, "Compétences")
	})

	t.Run("invalid template index", func(t *testing.T) {
		_, err := RenderHTML(doc, 9, 0)
		var selErr *SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, "template", selErr.Kind)
	})

	t.Run("invalid color index", func(t *testing.T) {
		_, err := RenderHTML(doc, 0, -1)
		var selErr *SelectionError
		assert.ErrorAs(t, err, &selErr)
	})
}
