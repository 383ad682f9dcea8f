package export

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

// fakeTokenStore records SetPublic calls.
type fakeTokenStore struct {
	token string
	err   error

	lastID     uuid.UUID
	lastPublic bool
	calls      int
}

func (f *fakeTokenStore) SetPublic(_ context.Context, id uuid.UUID, public bool) (string, error) {
	f.calls++
	f.lastID = id
	f.lastPublic = public
	return f.token, f.err
}

// fakeRenderer returns recognizable bytes per format.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("pdf-bytes"), nil
}

func (f *fakeRenderer) RenderImage(_ context.Context, _ string, format Format) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(string(format) + "-bytes"), nil
}

func testDocument() *types.CVDocument {
	doc := types.NewDocument()
	doc.Name = "Marie Curie"
	doc.Title = "Physicienne"
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		ok       bool
	}{
		{"pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{" png ", FormatPNG, true},
		{"jpg", FormatJPG, true},
		{"jpeg", FormatJPG, true},
		{"docx", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		format, err := ParseFormat(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, format)
		} else {
			var formatErr *FormatError
			assert.ErrorAs(t, err, &formatErr, "input %q", tt.input)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/jpeg", FormatJPG.ContentType())
}

func TestToggleSharing(t *testing.T) {
	t.Run("unsaved document cannot be shared", func(t *testing.T) {
		st := &fakeTokenStore{token: "tok-1"}
		c := NewCoordinator(st, &fakeRenderer{}, "https://cv.example.com")

		_, err := c.ToggleSharing(context.Background(), uuid.Nil)
		assert.ErrorIs(t, err, ErrNotSaved)
		assert.Zero(t, st.calls, "store is not touched")
	})

	t.Run("toggle on then off", func(t *testing.T) {
		st := &fakeTokenStore{token: "tok-1"}
		c := NewCoordinator(st, &fakeRenderer{}, "https://cv.example.com")
		id := uuid.New()

		state, err := c.ToggleSharing(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, state.IsPublic)
		assert.Equal(t, "tok-1", state.ShareToken)
		assert.Equal(t, "https://cv.example.com/cv/tok-1", state.ShareURL)
		assert.True(t, st.lastPublic)

		state, err = c.ToggleSharing(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, state.IsPublic)
		assert.False(t, st.lastPublic)
		assert.Equal(t, "tok-1", state.ShareToken, "token survives the toggle")
		assert.Empty(t, state.ShareURL, "no link while private")
	})

	t.Run("seeded public state toggles off first", func(t *testing.T) {
		st := &fakeTokenStore{token: "tok-1"}
		c := NewCoordinator(st, &fakeRenderer{}, "https://cv.example.com")
		c.SeedSharing(true, "tok-1")

		state := c.State()
		assert.True(t, state.IsPublic)
		assert.Equal(t, "https://cv.example.com/cv/tok-1", state.ShareURL)

		state, err := c.ToggleSharing(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, state.IsPublic)
		assert.False(t, st.lastPublic, "store asked to unpublish, not publish")
	})

	t.Run("store failure leaves state unchanged", func(t *testing.T) {
		st := &fakeTokenStore{err: fmt.Errorf("connection lost")}
		c := NewCoordinator(st, &fakeRenderer{}, "https://cv.example.com")

		state, err := c.ToggleSharing(context.Background(), uuid.New())
		require.Error(t, err)
		assert.False(t, state.IsPublic)
	})
}

func TestBuildShareURL(t *testing.T) {
	c := NewCoordinator(&fakeTokenStore{}, &fakeRenderer{}, "https://cv.example.com/")

	url, err := c.BuildShareURL("tok-9")
	require.NoError(t, err)
	assert.Equal(t, "https://cv.example.com/cv/tok-9", url, "trailing slash is normalized")

	_, err = c.BuildShareURL("")
	assert.ErrorIs(t, err, ErrNoShareToken)
}

func TestRequestExport(t *testing.T) {
	c := NewCoordinator(&fakeTokenStore{}, &fakeRenderer{}, "https://cv.example.com")
	ctx := context.Background()

	t.Run("routes by format", func(t *testing.T) {
		data, err := c.RequestExport(ctx, testDocument(), 0, 0, FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, []byte("pdf-bytes"), data)

		data, err = c.RequestExport(ctx, testDocument(), 0, 0, FormatPNG)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("invalid template index surfaces before rendering", func(t *testing.T) {
		_, err := c.RequestExport(ctx, testDocument(), 99, 0, FormatPDF)
		assert.Error(t, err)
	})

	t.Run("renderer failure is wrapped", func(t *testing.T) {
		failing := NewCoordinator(&fakeTokenStore{}, &fakeRenderer{err: fmt.Errorf("chrome crashed")}, "")
		_, err := failing.RequestExport(ctx, testDocument(), 0, 0, FormatPDF)

		var renderErr *RenderFailure
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, FormatPDF, renderErr.Format)
	})
}

func TestExportBundle(t *testing.T) {
	c := NewCoordinator(&fakeTokenStore{}, &fakeRenderer{}, "")

	bundle, err := c.ExportBundle(context.Background(), testDocument(), 0, 0)
	require.NoError(t, err)
	require.Len(t, bundle, 3)
	assert.Equal(t, []byte("pdf-bytes"), bundle[FormatPDF])
	assert.Equal(t, []byte("png-bytes"), bundle[FormatPNG])
	assert.Equal(t, []byte("jpg-bytes"), bundle[FormatJPG])

	t.Run("one failure fails the bundle", func(t *testing.T) {
		failing := NewCoordinator(&fakeTokenStore{}, &fakeRenderer{err: fmt.Errorf("chrome crashed")}, "")
		_, err := failing.ExportBundle(context.Background(), testDocument(), 0, 0)
		assert.Error(t, err)
	})
}
