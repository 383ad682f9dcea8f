// Package server provides the HTTP REST API for the CV studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/editor"
	"github.com/jonathan/cv-studio/internal/export"
	"github.com/jonathan/cv-studio/internal/rendering"
	"github.com/jonathan/cv-studio/internal/store"
)

// ErrSessionNotFound indicates the session id is unknown
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrBadRequest indicates a malformed request body or parameter
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, export.ErrNotSaved) || errors.Is(err, export.ErrNoShareToken) ||
		errors.Is(err, editor.ErrSaveInProgress) {
		return http.StatusConflict
	}

	var (
		validationErr *editor.ValidationError
		transitionErr *editor.TransitionError
		indexErr      *document.InvalidIndexError
		fieldErr      *document.UnknownFieldError
		listErr       *document.UnknownListError
		formatErr     *export.FormatError
		selectionErr  *rendering.SelectionError
		notFoundErr   *ErrSessionNotFound
		badReqErr     *ErrBadRequest
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &indexErr),
		errors.As(err, &fieldErr),
		errors.As(err, &listErr),
		errors.As(err, &formatErr),
		errors.As(err, &selectionErr),
		errors.As(err, &badReqErr):
		return http.StatusBadRequest
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
