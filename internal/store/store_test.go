package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

func TestDocumentColumns(t *testing.T) {
	doc := types.NewDocument()
	doc.Experience = []types.ExperienceEntry{{Company: "Sorbonne", Position: "Professeure"}}
	doc.Languages = []types.LanguageEntry{{Name: "Français", Level: types.LevelNative}}

	cols, err := documentColumns(doc)
	require.NoError(t, err)

	assert.Contains(t, string(cols.experience), `"position":"Professeure"`)
	assert.Contains(t, string(cols.experience), `"title":"Professeure"`, "legacy alias is kept in sync on the wire")
	assert.Contains(t, string(cols.languages), `"language":"Français"`)
	assert.Equal(t, "[]", string(cols.skills), "empty lists store as empty arrays, not null")
}

func TestDecodeColumn(t *testing.T) {
	t.Run("legacy records migrate on load", func(t *testing.T) {
		var entries []types.ExperienceEntry
		err := decodeColumn([]byte(`[{"company":"CNRS","title":"Chercheuse","period":"1900"}]`), &entries)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Chercheuse", entries[0].Position)
	})

	t.Run("bare-string languages migrate on load", func(t *testing.T) {
		var entries []types.LanguageEntry
		err := decodeColumn([]byte(`["Polonais",{"language":"Français","level":"natif"}]`), &entries)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Polonais", entries[0].Name)
		assert.Equal(t, types.LevelIntermediate, entries[0].Level)
		assert.Equal(t, types.LevelNative, entries[1].Level)
	})

	t.Run("empty column leaves the target untouched", func(t *testing.T) {
		entries := []string{"kept"}
		require.NoError(t, decodeColumn(nil, &entries))
		assert.Equal(t, []string{"kept"}, entries)
	})

	t.Run("corrupt column is an error", func(t *testing.T) {
		var entries []string
		assert.Error(t, decodeColumn([]byte(`{notjson`), &entries))
	})
}
