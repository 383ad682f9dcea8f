package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

func strPtr(s string) *string { return &s }

func TestSetField(t *testing.T) {
	doc := types.NewDocument()

	t.Run("sets scalar fields", func(t *testing.T) {
		out, err := SetField(doc, "summary", "Recherches sur la radioactivité")
		require.NoError(t, err)
		assert.Equal(t, "Recherches sur la radioactivité", out.Summary)
		assert.Empty(t, doc.Summary, "original document is untouched")
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := SetField(doc, "nickname", "x")
		var fieldErr *UnknownFieldError
		assert.ErrorAs(t, err, &fieldErr)
	})
}

func TestUpsertExperience(t *testing.T) {
	doc := types.NewDocument()

	t.Run("append then merge", func(t *testing.T) {
		out, err := UpsertExperience(doc, Append, ExperiencePatch{
			Company:  strPtr("Sorbonne"),
			Position: strPtr("Professeure"),
		})
		require.NoError(t, err)
		require.Len(t, out.Experience, 1)

		out2, err := UpsertExperience(out, 0, ExperiencePatch{Period: strPtr("1906-1934")})
		require.NoError(t, err)
		assert.Equal(t, "Sorbonne", out2.Experience[0].Company, "untouched fields survive the merge")
		assert.Equal(t, "1906-1934", out2.Experience[0].Period)
		assert.Empty(t, out.Experience[0].Period, "previous value is unchanged")
	})

	t.Run("out of bounds index", func(t *testing.T) {
		_, err := UpsertExperience(doc, 3, ExperiencePatch{})
		var indexErr *InvalidIndexError
		require.ErrorAs(t, err, &indexErr)
		assert.Equal(t, 3, indexErr.Index)
		assert.Equal(t, 0, indexErr.Length)
	})
}

func TestUpsertLanguage(t *testing.T) {
	doc := types.NewDocument()

	t.Run("new language defaults to intermediate", func(t *testing.T) {
		out, err := UpsertLanguage(doc, Append, LanguagePatch{Name: strPtr("Polonais")})
		require.NoError(t, err)
		require.Len(t, out.Languages, 1)
		assert.Equal(t, types.LevelIntermediate, out.Languages[0].Level)
	})

	t.Run("level is normalized on write", func(t *testing.T) {
		out, err := UpsertLanguage(doc, Append, LanguagePatch{
			Name:  strPtr("Français"),
			Level: strPtr("courant"),
		})
		require.NoError(t, err)
		assert.Equal(t, types.LevelNative, out.Languages[0].Level)
	})
}

func TestUpsertSkillAndInterest(t *testing.T) {
	doc := types.NewDocument()

	out, err := UpsertSkill(doc, Append, "Physique")
	require.NoError(t, err)
	out, err = UpsertSkill(out, 0, "Chimie")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chimie"}, out.Skills)

	out, err = UpsertInterest(out, Append, "Lecture")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lecture"}, out.Interests)
}

func TestRemoveListItem(t *testing.T) {
	doc := types.NewDocument()
	doc.Skills = []string{"a", "b", "c"}

	t.Run("removes the addressed entry", func(t *testing.T) {
		out, err := RemoveListItem(doc, ListSkills, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, out.Skills)
		assert.Equal(t, []string{"a", "b", "c"}, doc.Skills)
	})

	t.Run("out of bounds leaves document unchanged", func(t *testing.T) {
		_, err := RemoveListItem(doc, ListSkills, 7)
		var indexErr *InvalidIndexError
		assert.ErrorAs(t, err, &indexErr)
	})

	t.Run("unknown list", func(t *testing.T) {
		_, err := RemoveListItem(doc, ListName("awards"), 0)
		var listErr *UnknownListError
		assert.ErrorAs(t, err, &listErr)
	})
}

func TestSetSkillsFromText(t *testing.T) {
	doc := types.NewDocument()

	out := SetSkillsFromText(doc, "React, , TypeScript ,  ")
	assert.Equal(t, []string{"React", "TypeScript"}, out.Skills)

	out = SetSkillsFromText(out, "")
	assert.Empty(t, out.Skills)
	assert.NotNil(t, out.Skills)
}

func TestSetLanguagesFromText(t *testing.T) {
	doc := types.NewDocument()
	doc.Languages = []types.LanguageEntry{
		{Name: "Français", Level: types.LevelNative},
		{Name: "Anglais", Level: types.LevelAdvanced},
	}

	out := SetLanguagesFromText(doc, "Français, Espagnol")
	require.Len(t, out.Languages, 2)
	assert.Equal(t, types.LevelNative, out.Languages[0].Level, "existing level preserved by name")
	assert.Equal(t, "Espagnol", out.Languages[1].Name)
	assert.Equal(t, types.LevelIntermediate, out.Languages[1].Level, "new language defaults")
}
