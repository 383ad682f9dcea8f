package export

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-studio/internal/rendering"
	"github.com/jonathan/cv-studio/internal/types"
)

// Format is a supported export format.
type Format string

// Supported export formats.
const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat validates a format string from user input.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	default:
		return "", &FormatError{Value: value}
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// TokenStore is the slice of the document store the coordinator needs.
type TokenStore interface {
	SetPublic(ctx context.Context, id uuid.UUID, public bool) (string, error)
}

// SharingState is the public-sharing view exposed to the caller.
type SharingState struct {
	IsPublic   bool   `json:"is_public"`
	ShareToken string `json:"share_token,omitempty"`
	ShareURL   string `json:"share_url,omitempty"`
}

// Coordinator tracks the public-sharing toggle for one editing session and
// drives the render collaborators. Concurrent export requests are not
// deduplicated: each is an independent render attempt.
type Coordinator struct {
	store    TokenStore
	renderer Renderer
	baseURL  string

	mu         sync.Mutex
	isPublic   bool
	shareToken string
}

// NewCoordinator creates a coordinator. baseURL is the public origin used
// when composing share links.
func NewCoordinator(store TokenStore, renderer Renderer, baseURL string) *Coordinator {
	return &Coordinator{
		store:    store,
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// SeedSharing installs the persisted sharing state when a session opens an
// already-stored document, so the first toggle on a public CV unpublishes it
// instead of re-issuing the publish.
func (c *Coordinator) SeedSharing(public bool, token string) {
	c.mu.Lock()
	c.isPublic = public
	c.shareToken = token
	c.mu.Unlock()
}

// ToggleSharing flips the public flag for a persisted document and returns
// the new sharing state. A document that was never saved has no id to share;
// the toggle fails and the local state is left unchanged. Toggling off only
// clears the flag; whether the token stays valid in the store is
// store-defined.
func (c *Coordinator) ToggleSharing(ctx context.Context, docID uuid.UUID) (SharingState, error) {
	if docID == uuid.Nil {
		return c.State(), ErrNotSaved
	}

	c.mu.Lock()
	next := !c.isPublic
	c.mu.Unlock()

	token, err := c.store.SetPublic(ctx, docID, next)
	if err != nil {
		return c.State(), fmt.Errorf("failed to toggle sharing: %w", err)
	}

	c.mu.Lock()
	c.isPublic = next
	c.shareToken = token
	c.mu.Unlock()

	return c.State(), nil
}

// State returns the current sharing state, with the share URL composed when
// sharing is active.
func (c *Coordinator) State() SharingState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := SharingState{IsPublic: c.isPublic, ShareToken: c.shareToken}
	if c.isPublic && c.shareToken != "" {
		if url, err := c.BuildShareURL(c.shareToken); err == nil {
			state.ShareURL = url
		}
	}
	return state
}

// BuildShareURL composes the public link for a share token.
func (c *Coordinator) BuildShareURL(token string) (string, error) {
	if token == "" {
		return "", ErrNoShareToken
	}
	return fmt.Sprintf("%s/cv/%s", c.baseURL, token), nil
}

// RequestExport renders the document with the chosen template and accent
// color into the requested format.
func (c *Coordinator) RequestExport(ctx context.Context, doc *types.CVDocument, templateIndex, colorIndex int, format Format) ([]byte, error) {
	html, err := rendering.RenderHTML(doc, templateIndex, colorIndex)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = c.renderer.RenderPDF(ctx, html)
	case FormatPNG, FormatJPG:
		data, err = c.renderer.RenderImage(ctx, html, format)
	default:
		return nil, &FormatError{Value: string(format)}
	}
	if err != nil {
		return nil, &RenderFailure{Format: format, Cause: err}
	}
	return data, nil
}

// ExportBundle renders every supported format concurrently and returns the
// full set, failing if any render fails.
func (c *Coordinator) ExportBundle(ctx context.Context, doc *types.CVDocument, templateIndex, colorIndex int) (map[Format][]byte, error) {
	formats := []Format{FormatPDF, FormatPNG, FormatJPG}
	results := make(map[Format][]byte, len(formats))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			data, err := c.RequestExport(gCtx, doc, templateIndex, colorIndex, format)
			if err != nil {
				return err
			}
			mu.Lock()
			results[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
