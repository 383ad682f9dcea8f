package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicInfoValidate(t *testing.T) {
	t.Run("name and title are enough", func(t *testing.T) {
		info := BasicInfo{Name: "Marie Curie", Title: "Physicienne"}
		assert.NoError(t, info.Validate())
	})

	t.Run("missing name fails", func(t *testing.T) {
		info := BasicInfo{Title: "Physicienne"}
		assert.Error(t, info.Validate())
	})

	t.Run("missing title fails", func(t *testing.T) {
		info := BasicInfo{Name: "Marie Curie"}
		assert.Error(t, info.Validate())
	})

	t.Run("malformed email fails", func(t *testing.T) {
		info := BasicInfo{Name: "Marie Curie", Title: "Physicienne", Email: "not-an-email"}
		assert.Error(t, info.Validate())
	})

	t.Run("empty email is allowed", func(t *testing.T) {
		info := BasicInfo{Name: "Marie Curie", Title: "Physicienne"}
		assert.NoError(t, info.Validate())
	})
}

func TestSeedDocument(t *testing.T) {
	info := BasicInfo{
		Name:  "Marie Curie",
		Title: "Physicienne",
		Email: "marie@sorbonne.fr",
		Phone: "+33 1 00 00 00 00",
		Photo: "https://example.com/photo.jpg",
	}

	doc := info.SeedDocument()
	assert.Equal(t, "Marie Curie", doc.Name)
	assert.Equal(t, "Physicienne", doc.Title)
	assert.Equal(t, "marie@sorbonne.fr", doc.Email)
	assert.Equal(t, "https://example.com/photo.jpg", doc.Photo)
	assert.Empty(t, doc.Summary)
	assert.Empty(t, doc.Experience)
	assert.NotNil(t, doc.Skills)
}
