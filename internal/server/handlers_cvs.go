package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/rendering"
	"github.com/jonathan/cv-studio/internal/types"
)

// pathID parses the {id} path value as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrBadRequest{Message: fmt.Sprintf("invalid id: %v", err)}
	}
	return id, nil
}

// handleListCVs returns summaries of the stored documents.
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", raw))
			return
		}
		limit = parsed
	}

	summaries, err := s.store.ListCVs(r.Context(), limit)
	if err != nil {
		s.failResponse(w, fmt.Errorf("failed to list documents: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"cvs": summaries})
}

// handleCreateCV stores a document posted directly, outside any session.
func (s *Server) handleCreateCV(w http.ResponseWriter, r *http.Request) {
	var doc types.CVDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	id, err := s.store.CreateCV(r.Context(), &doc)
	if err != nil {
		s.failResponse(w, fmt.Errorf("failed to create document: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id})
}

// handleGetCV returns one stored document.
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	doc, err := s.store.GetCV(r.Context(), id)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleUpdateCV replaces a stored document.
func (s *Server) handleUpdateCV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var doc types.CVDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := s.store.UpdateCV(r.Context(), id, &doc); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteCV removes a stored document.
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	if err := s.store.DeleteCV(r.Context(), id); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSharedCV serves the public read-only page for a share token. Only
// documents currently marked public resolve; everything else is a 404.
func (s *Server) handleSharedCV(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	doc, err := s.store.GetCVByShareToken(r.Context(), token)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	// Shared pages use the default template and accent
	html, err := rendering.RenderHTML(doc, 0, 0)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error writing shared CV response: %v", err)
	}
}
