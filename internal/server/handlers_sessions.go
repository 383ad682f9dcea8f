package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/draft"
	"github.com/jonathan/cv-studio/internal/editor"
	"github.com/jonathan/cv-studio/internal/export"
	"github.com/jonathan/cv-studio/internal/rendering"
	"github.com/jonathan/cv-studio/internal/types"
)

// sessionState pairs an editor session with its export coordinator. The
// mutex serializes all access to both: handler goroutines are the only
// writers, and each holds the lock only around session method calls, never
// across a generation or render call.
type sessionState struct {
	mu      sync.Mutex
	session *editor.Session
	exports *export.Coordinator
}

// sessionView is the JSON shape returned for session state.
type sessionView struct {
	ID            uuid.UUID         `json:"id"`
	Step          editor.Step       `json:"step"`
	Locale        string            `json:"locale"`
	TemplateIndex int               `json:"template_index"`
	ColorIndex    int               `json:"color_index"`
	Document      *types.CVDocument `json:"document"`
	DocumentID    *uuid.UUID        `json:"document_id,omitempty"`
	Loading       bool              `json:"loading"`
	Generating    bool              `json:"generating"`
	CanUndo       bool              `json:"can_undo"`
	CanRedo       bool              `json:"can_redo"`
	Warning       string            `json:"warning,omitempty"`
}

// viewOf snapshots a session for the response. Callers hold the state lock.
func viewOf(sess *editor.Session) sessionView {
	v := sessionView{
		ID:            sess.ID,
		Step:          sess.Step,
		Locale:        sess.Locale,
		TemplateIndex: sess.TemplateIndex,
		ColorIndex:    sess.ColorIndex,
		Document:      sess.Document,
		Loading:       sess.Loading,
		Generating:    sess.Generating,
		CanUndo:       sess.CanUndo(),
		CanRedo:       sess.CanRedo(),
	}
	if sess.DocumentID != uuid.Nil {
		id := sess.DocumentID
		v.DocumentID = &id
	}
	return v
}

// lookupSession resolves the {id} path value to registered session state.
func (s *Server) lookupSession(r *http.Request) (*sessionState, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrBadRequest{Message: fmt.Sprintf("invalid session id: %v", err)}
	}

	s.sessionsMu.RLock()
	state, ok := s.sessions[id]
	s.sessionsMu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return state, nil
}

// handleCreateSession opens a new editor session. With a cv_id in the body
// the persisted document is loaded and the session starts at the Edit step;
// otherwise it starts empty at Intake.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locale string     `json:"locale"`
		CVID   *uuid.UUID `json:"cv_id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}
	locale := req.Locale
	if locale == "" {
		locale = s.locale
	}

	coordinator := export.NewCoordinator(s.store, s.renderer, s.baseURL)

	var sess *editor.Session
	if req.CVID != nil {
		doc, err := s.store.GetCV(r.Context(), *req.CVID)
		if err != nil {
			s.failResponse(w, err)
			return
		}
		public, token, err := s.store.GetSharing(r.Context(), *req.CVID)
		if err != nil {
			s.failResponse(w, err)
			return
		}
		coordinator.SeedSharing(public, token)
		sess = editor.NewSessionFromDocument(locale, *req.CVID, doc)
	} else {
		sess = editor.NewSession(locale)
	}

	state := &sessionState{
		session: sess,
		exports: coordinator,
	}

	s.sessionsMu.Lock()
	s.sessions[sess.ID] = state
	s.sessionsMu.Unlock()

	s.jsonResponse(w, http.StatusCreated, viewOf(sess))
}

// handleGetSession returns the current session state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state.mu.Lock()
	view := viewOf(state.session)
	state.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, view)
}

// handleIntake validates the seed facts, runs the draft generation, and
// resolves the session into the Edit step. The generation call runs without
// the session lock held; a session reset while the call is outstanding makes
// the resolve a no-op and the stale draft is dropped.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var info types.BasicInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := info.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	state.mu.Lock()
	token, err := state.session.SubmitIntake(info)
	locale := state.session.Locale
	state.mu.Unlock()
	if err != nil {
		s.failResponse(w, err)
		return
	}

	doc, genErr := draft.Build(r.Context(), s.generator, info, locale)
	if genErr != nil {
		log.Printf("draft generation fell back to seed: %v", genErr)
	}

	state.mu.Lock()
	applied := state.session.ResolveGeneration(token, doc)
	view := viewOf(state.session)
	state.mu.Unlock()

	if !applied {
		s.errorResponse(w, http.StatusConflict, "session was reset during generation")
		return
	}
	if genErr != nil {
		view.Warning = "generation unavailable, starting from your details"
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// stepRequest applies one no-body session transition and returns the state.
func (s *Server) stepRequest(w http.ResponseWriter, r *http.Request, apply func(*editor.Session) error) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state.mu.Lock()
	applyErr := apply(state.session)
	view := viewOf(state.session)
	state.mu.Unlock()

	if applyErr != nil {
		s.failResponse(w, applyErr)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.stepRequest(w, r, func(sess *editor.Session) error { return sess.Next() })
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.stepRequest(w, r, func(sess *editor.Session) error { return sess.Back() })
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.stepRequest(w, r, func(sess *editor.Session) error {
		sess.Reset()
		return nil
	})
}

// Undo and redo are silent no-ops at the history boundaries, mirroring how
// the buttons simply disable in the UI.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.stepRequest(w, r, func(sess *editor.Session) error {
		sess.Undo()
		return nil
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.stepRequest(w, r, func(sess *editor.Session) error {
		sess.Redo()
		return nil
	})
}

// editRequest is one logical edit against the session document.
type editRequest struct {
	Op    string            `json:"op"`
	Field string            `json:"field,omitempty"`
	Value string            `json:"value,omitempty"`
	List  document.ListName `json:"list,omitempty"`
	Index int               `json:"index,omitempty"`
	Text  string            `json:"text,omitempty"`

	Experience *document.ExperiencePatch `json:"experience,omitempty"`
	Education  *document.EducationPatch  `json:"education,omitempty"`
	Language   *document.LanguagePatch   `json:"language,omitempty"`
}

// applyEdit produces the next document value from the current one.
func applyEdit(doc *types.CVDocument, req editRequest) (*types.CVDocument, error) {
	switch req.Op {
	case "set_field":
		return document.SetField(doc, req.Field, req.Value)
	case "upsert":
		switch req.List {
		case document.ListExperience:
			patch := req.Experience
			if patch == nil {
				patch = &document.ExperiencePatch{}
			}
			return document.UpsertExperience(doc, req.Index, *patch)
		case document.ListEducation:
			patch := req.Education
			if patch == nil {
				patch = &document.EducationPatch{}
			}
			return document.UpsertEducation(doc, req.Index, *patch)
		case document.ListLanguages:
			patch := req.Language
			if patch == nil {
				patch = &document.LanguagePatch{}
			}
			return document.UpsertLanguage(doc, req.Index, *patch)
		case document.ListSkills:
			return document.UpsertSkill(doc, req.Index, req.Value)
		case document.ListInterests:
			return document.UpsertInterest(doc, req.Index, req.Value)
		default:
			return nil, &document.UnknownListError{List: req.List}
		}
	case "remove":
		return document.RemoveListItem(doc, req.List, req.Index)
	case "set_skills_text":
		return document.SetSkillsFromText(doc, req.Text), nil
	case "set_languages_text":
		return document.SetLanguagesFromText(doc, req.Text), nil
	default:
		return nil, &ErrBadRequest{Message: fmt.Sprintf("unknown edit op: %q", req.Op)}
	}
}

// handleEdit applies one logical edit and commits it as one undo step.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	state.mu.Lock()
	next, applyErr := applyEdit(state.session.Document, req)
	if applyErr == nil {
		state.session.CommitEdit(next)
	}
	view := viewOf(state.session)
	state.mu.Unlock()

	if applyErr != nil {
		s.failResponse(w, applyErr)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// indexRequest is the body for template and color selection.
type indexRequest struct {
	Index int `json:"index"`
}

// handleSelectTemplate records the gallery choice, bounded by the registry.
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Index >= rendering.TemplateCount() {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("template index %d out of range (%d templates)", req.Index, rendering.TemplateCount()))
		return
	}
	s.stepRequest(w, r, func(sess *editor.Session) error { return sess.SelectTemplate(req.Index) })
}

// handleSelectColor records the accent color choice, bounded by the palette.
func (s *Server) handleSelectColor(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Index >= rendering.PaletteCount() {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("color index %d out of range (%d colors)", req.Index, rendering.PaletteCount()))
		return
	}
	s.stepRequest(w, r, func(sess *editor.Session) error { return sess.SelectColor(req.Index) })
}

// handleSave persists the session document: first save inserts, later saves
// update in place. The session loading flag is held across the store round
// trip; it also serializes saves, since two concurrent first saves would
// otherwise both insert.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state.mu.Lock()
	if err := state.session.BeginSave(); err != nil {
		state.mu.Unlock()
		s.failResponse(w, err)
		return
	}
	doc := state.session.Document
	docID := state.session.DocumentID
	state.mu.Unlock()

	var saveErr error
	if docID == uuid.Nil {
		var id uuid.UUID
		if id, saveErr = s.store.CreateCV(r.Context(), doc); saveErr == nil {
			docID = id
		} else {
			saveErr = fmt.Errorf("failed to save document: %w", saveErr)
		}
	} else {
		saveErr = s.store.UpdateCV(r.Context(), docID, doc)
	}

	state.mu.Lock()
	state.session.EndSave()
	if saveErr == nil {
		state.session.MarkSaved(docID)
	}
	view := viewOf(state.session)
	state.mu.Unlock()

	if saveErr != nil {
		s.failResponse(w, saveErr)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleToggleShare flips public sharing for the saved document.
func (s *Server) handleToggleShare(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state.mu.Lock()
	docID := state.session.DocumentID
	state.mu.Unlock()

	sharing, err := state.exports.ToggleSharing(r.Context(), docID)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sharing)
}

// handleExport renders the session document in the requested format and
// streams the bytes back.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state, err := s.lookupSession(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state.mu.Lock()
	doc := state.session.Document
	templateIndex := state.session.TemplateIndex
	colorIndex := state.session.ColorIndex
	state.mu.Unlock()

	data, err := state.exports.RequestExport(r.Context(), doc, templateIndex, colorIndex, format)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cv.%s", format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing export response: %v", err)
	}
}

// handleListTemplates returns the template registry for the gallery step.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Templates())
}

// handleListPalette returns the accent color palette.
func (s *Server) handleListPalette(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Palette())
}
