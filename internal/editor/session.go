package editor

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/history"
	"github.com/jonathan/cv-studio/internal/types"
)

// ErrSaveInProgress rejects a save started while an earlier one is still
// waiting on the store.
var ErrSaveInProgress = errors.New("a save is already in progress")

// Step identifies one stage of the editor workflow.
type Step string

// Workflow steps, in order. Back-navigation makes the sequence cyclic from
// Gallery onward; Intake and Generating are only re-entered through Reset.
const (
	StepIntake     Step = "intake"
	StepGenerating Step = "generating"
	StepEdit       Step = "edit"
	StepGallery    Step = "gallery"
	StepCustomize  Step = "customize"
	StepExport     Step = "export"
)

// Session is the per-tab editor state: current step, UI locale, visual
// selections, the seed facts, and the one current document reference. All
// mutation happens through session methods on a single logical thread; the
// documents themselves are immutable values.
type Session struct {
	ID            uuid.UUID
	Step          Step
	Locale        string
	TemplateIndex int
	ColorIndex    int
	BasicInfo     types.BasicInfo
	Document      *types.CVDocument
	DocumentID    uuid.UUID // uuid.Nil until the first successful save
	Loading       bool
	Generating    bool

	// generation counts intake submissions. A draft response carrying a
	// stale token (the user reset meanwhile) is discarded.
	generation int
	log        *history.Log
}

// NewSession starts a fresh session at the Intake step with an empty
// document. Locale falls back to French, matching the product default.
func NewSession(locale string) *Session {
	doc := types.NewDocument()
	return &Session{
		ID:       uuid.New(),
		Step:     StepIntake,
		Locale:   normalizeLocale(locale),
		Document: doc,
		log:      history.NewLog(doc),
	}
}

// NewSessionFromDocument opens an existing persisted document, skipping
// Intake and Generating and entering directly at Edit so the user reviews
// content before committing to a template.
func NewSessionFromDocument(locale string, docID uuid.UUID, doc *types.CVDocument) *Session {
	s := NewSession(locale)
	s.Step = StepEdit
	s.DocumentID = docID
	s.Document = doc
	s.log = history.NewLog(doc)
	return s
}

func normalizeLocale(locale string) string {
	if locale == "en" {
		return "en"
	}
	return "fr"
}

// SubmitIntake validates the intake guard and, on success, moves the session
// to Generating. The returned token identifies this generation attempt and
// must be passed back to ResolveGeneration.
func (s *Session) SubmitIntake(info types.BasicInfo) (int, error) {
	if s.Step != StepIntake {
		return 0, &TransitionError{From: s.Step, Trigger: "submit"}
	}
	if info.Name == "" {
		return 0, &ValidationError{Field: "name", Message: "name is required"}
	}
	if info.Title == "" {
		return 0, &ValidationError{Field: "title", Message: "title is required"}
	}

	s.BasicInfo = info
	s.Step = StepGenerating
	s.Generating = true
	s.generation++
	return s.generation, nil
}

// ResolveGeneration applies the outcome of the draft call started by
// SubmitIntake. Both success and failure resolve into Edit; the two differ
// only in document content, which the caller has already shaped through the
// reconciler. A stale token or a session no longer in Generating means the
// session was reset while the call was outstanding: the response is
// discarded and the session untouched.
func (s *Session) ResolveGeneration(token int, doc *types.CVDocument) bool {
	if s.Step != StepGenerating || token != s.generation {
		return false
	}
	s.Document = doc
	s.log = history.NewLog(doc)
	s.Step = StepEdit
	s.Generating = false
	return true
}

// Next advances to the following step. Legal from Edit, Gallery and
// Customize only.
func (s *Session) Next() error {
	switch s.Step {
	case StepEdit:
		s.Step = StepGallery
	case StepGallery:
		s.Step = StepCustomize
	case StepCustomize:
		s.Step = StepExport
	default:
		return &TransitionError{From: s.Step, Trigger: "next"}
	}
	return nil
}

// Back returns to the previous step. Legal from Gallery, Customize and
// Export only.
func (s *Session) Back() error {
	switch s.Step {
	case StepGallery:
		s.Step = StepEdit
	case StepCustomize:
		s.Step = StepGallery
	case StepExport:
		s.Step = StepCustomize
	default:
		return &TransitionError{From: s.Step, Trigger: "back"}
	}
	return nil
}

// Reset returns the session to Intake from any step. The document is
// replaced with an empty one, selections and seed facts are cleared, and any
// in-flight generation is invalidated.
func (s *Session) Reset() {
	doc := types.NewDocument()
	s.Step = StepIntake
	s.BasicInfo = types.BasicInfo{}
	s.Document = doc
	s.log = history.NewLog(doc)
	s.TemplateIndex = 0
	s.ColorIndex = 0
	s.Generating = false
	s.generation++
}

// CommitEdit installs a new document value as the current one and records it
// in history. Every explicit field or list mutation funnels through here;
// callers commit at logical-edit granularity, not per keystroke.
func (s *Session) CommitEdit(doc *types.CVDocument) {
	s.Document = doc
	s.log.Record(doc)
}

// Undo steps the document one logical edit back. No-op at the oldest
// snapshot.
func (s *Session) Undo() bool {
	doc, ok := s.log.Undo()
	if !ok {
		return false
	}
	s.Document = doc
	return true
}

// Redo steps the document one logical edit forward. No-op when the redo
// branch was discarded or never existed.
func (s *Session) Redo() bool {
	doc, ok := s.log.Redo()
	if !ok {
		return false
	}
	s.Document = doc
	return true
}

// CanUndo reports whether Undo would move.
func (s *Session) CanUndo() bool {
	return s.log.CanUndo()
}

// CanRedo reports whether Redo would move.
func (s *Session) CanRedo() bool {
	return s.log.CanRedo()
}

// SelectTemplate records the chosen gallery template. The caller bounds the
// index against its template registry.
func (s *Session) SelectTemplate(index int) error {
	if index < 0 {
		return &ValidationError{Field: "template", Message: "template index must not be negative"}
	}
	s.TemplateIndex = index
	return nil
}

// SelectColor records the chosen accent color. The caller bounds the index
// against its palette.
func (s *Session) SelectColor(index int) error {
	if index < 0 {
		return &ValidationError{Field: "color", Message: "color index must not be negative"}
	}
	s.ColorIndex = index
	return nil
}

// BeginSave flags the session as loading for the duration of a persistence
// round trip. Only one save may be outstanding at a time; without the guard
// two concurrent first saves would each insert a fresh row.
func (s *Session) BeginSave() error {
	if s.Loading {
		return ErrSaveInProgress
	}
	s.Loading = true
	return nil
}

// EndSave clears the loading flag. Called whether the store call succeeded
// or failed.
func (s *Session) EndSave() {
	s.Loading = false
}

// MarkSaved records the persisted id after the first successful save.
func (s *Session) MarkSaved(id uuid.UUID) {
	s.DocumentID = id
}
